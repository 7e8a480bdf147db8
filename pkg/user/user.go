package user

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserDataInvalid = errors.New("user data is invalid")
)

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
}
