package util

import (
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/model"

	"github.com/go-playground/validator/v10"
)

// ValidateReactionKind 验证表态类型是否属于固定集合
func ValidateReactionKind(fl validator.FieldLevel) bool {
	return model.ReactionKind(fl.Field().String()).Valid()
}

// ValidateRole 验证用户角色取值
func ValidateRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	return role == model.RoleEmployee || role == model.RoleAdmin
}
