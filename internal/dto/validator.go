package dto

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	registerOnce sync.Once
)

// 与 /api/tutorials 下静态路由冲突的 slug
var reservedSlugs = map[string]struct{}{
	"chapters": {},
}

// IsValidSlug 检查教程slug格式
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// IsReservedSlug slug 是否被静态路由占用
func IsReservedSlug(s string) bool {
	_, ok := reservedSlugs[s]
	return ok
}

// RegisterValidators 向gin的校验引擎注册自定义规则，并使用json字段名输出错误
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			slug := fl.Field().String()
			return IsValidSlug(slug) && !IsReservedSlug(slug)
		})
	})
}
