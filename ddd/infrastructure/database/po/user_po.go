package po

// User 持久化对象，对应 users 表；本服务只读取角色与权限。
type User struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;size:128"`
	Email       string `gorm:"column:email;size:191;uniqueIndex"`
	Role        string `gorm:"column:role;size:64;index"`
	Permissions string `gorm:"column:permissions;type:text"`
}

func (User) TableName() string {
	return "users"
}

// AllModels 返回需要自动迁移的持久化对象。
func AllModels() []interface{} {
	return []interface{}{&Article{}, &ArticleView{}, &Notification{}, &User{}}
}
