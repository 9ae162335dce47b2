package interfaces

import "github.com/springboardmentor4545/Brag-Board-Team6/internal/model"

// UserRepository 接口定义了用户仓库应该实现的方法
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	Count() (int, error)
	FindAll(page, pageSize int) ([]*model.User, error)
}
