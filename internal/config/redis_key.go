package config

import "fmt"

// RedisKeyStruct builds the Redis keys for per-student ephemeral state.
type RedisKeyStruct struct{}

func NewRedisKeyStruct() *RedisKeyStruct {
	return &RedisKeyStruct{}
}

// StagedFormKey returns the key holding a student's staged exam-form selection.
func (r *RedisKeyStruct) StagedFormKey(studentID int) string {
	return fmt.Sprintf("examform:staged:%d", studentID)
}

// BoundOrderKey returns the key holding the gateway order id bound to a
// student's staged selection.
func (r *RedisKeyStruct) BoundOrderKey(studentID int) string {
	return fmt.Sprintf("examform:order:%d", studentID)
}

// ResetTokenKey returns the key holding a one-time password reset token.
func (r *RedisKeyStruct) ResetTokenKey(token string) string {
	return fmt.Sprintf("pwreset:%s", token)
}

var RedisKey = NewRedisKeyStruct()
