package errs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError 请求形状非法（缺字段、类型错误、必填数组为空）
type ValidationError struct {
	// Index 为出错条目的下标，-1 表示与条目无关
	Index int
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("validation failed at item %d: %s", e.Index, e.Msg)
	}
	return fmt.Sprintf("validation failed: %s", e.Msg)
}

// NewValidation 创建与条目无关的校验错误
func NewValidation(msg string) *ValidationError {
	return &ValidationError{Index: -1, Msg: msg}
}

// NewValidationAt 创建指向特定条目的校验错误
func NewValidationAt(index int, msg string) *ValidationError {
	return &ValidationError{Index: index, Msg: msg}
}

// NotFoundError 引用的实体不存在
type NotFoundError struct {
	Resource string
	IDs      []uint
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, joinIDs(e.IDs))
}

// NewNotFound 创建实体不存在错误
func NewNotFound(resource string, ids ...uint) *NotFoundError {
	return &NotFoundError{Resource: resource, IDs: ids}
}

// ConflictError 并发修改导致事务内更新影响零行，事务已回滚
type ConflictError struct {
	Resource string
	IDs      []uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent modification of %s: %s", e.Resource, joinIDs(e.IDs))
}

// NewConflict 创建并发冲突错误
func NewConflict(resource string, ids ...uint) *ConflictError {
	return &ConflictError{Resource: resource, IDs: ids}
}

// CapacityError 超出容量上限（如精选画作数量）
type CapacityError struct {
	Resource string
	Limit    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s limit reached (max %d)", e.Resource, e.Limit)
}

// NewCapacity 创建容量上限错误
func NewCapacity(resource string, limit int) *CapacityError {
	return &CapacityError{Resource: resource, Limit: limit}
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound 判断是否为实体不存在错误
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict 判断是否为并发冲突错误
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsCapacity 判断是否为容量上限错误
func IsCapacity(err error) bool {
	var target *CapacityError
	return errors.As(err, &target)
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ", ")
}
