package main

import "github.com/nsxzhou1114/aihub-api/cmd"

func main() {
	cmd.Execute()
}
