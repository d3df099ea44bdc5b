package errors

import (
	stderrors "errors"
	"fmt"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// fundamental 基础错误，携带创建时的调用堆栈
type fundamental struct {
	msg string
	*stack
}

func (f *fundamental) Error() string { return f.msg }

// New 创建携带堆栈的错误
func New(message string) error {
	return &fundamental{
		msg:   message,
		stack: callers(),
	}
}

// Errorf 创建携带堆栈的格式化错误
func Errorf(format string, args ...interface{}) error {
	return &fundamental{
		msg:   fmt.Sprintf(format, args...),
		stack: callers(),
	}
}

type withStack struct {
	error
	*stack
}

func (w *withStack) Unwrap() error { return w.error }

// WithStack 为错误附加当前调用堆栈
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return &withStack{
		error: err,
		stack: callers(),
	}
}

type withMessage struct {
	cause error
	msg   string
	*stack
}

func (w *withMessage) Error() string { return w.msg + ": " + w.cause.Error() }
func (w *withMessage) Unwrap() error { return w.cause }

// Wrap 包装错误并附加消息与堆栈，err为nil时返回nil
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &withMessage{
		cause: err,
		msg:   message,
		stack: callers(),
	}
}

// Wrapf 包装错误并附加格式化消息与堆栈
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withMessage{
		cause: err,
		msg:   fmt.Sprintf(format, args...),
		stack: callers(),
	}
}

// NewWithReport 创建错误并上报
func NewWithReport(message string) error {
	err := New(message)
	report(err)
	return err
}

// ErrorfAndReport 创建格式化错误并上报
func ErrorfAndReport(format string, args ...interface{}) error {
	err := Errorf(format, args...)
	report(err)
	return err
}

// WithStackAndReport 附加堆栈并上报
func WithStackAndReport(err error) error {
	if err == nil {
		return nil
	}
	err = WithStack(err)
	report(err)
	return err
}

// WrapAndReport 包装错误并上报
func WrapAndReport(err error, message string) error {
	if err == nil {
		return nil
	}
	err = Wrap(err, message)
	report(err)
	return err
}

// WrapfAndReport 包装格式化错误并上报
func WrapfAndReport(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	err = Wrapf(err, format, args...)
	report(err)
	return err
}

// Is 同标准库errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As 同标准库errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Unwrap 同标准库errors.Unwrap
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

const maxStackDepth = 32

type stack []uintptr

func callers() *stack {
	var pcs [maxStackDepth]uintptr
	// 跳过runtime.Callers、callers与构造函数本身
	n := runtime.Callers(3, pcs[:])
	var st stack = pcs[0:n]
	return &st
}

// fullStack 返回可读的堆栈行，格式为 file:line (function)
func (s *stack) fullStack() []string {
	lines := make([]string, 0, len(*s))
	frames := runtime.CallersFrames(*s)
	for {
		frame, more := frames.Next()
		if frame.Function == "" {
			break
		}
		if strings.HasPrefix(frame.Function, "runtime.") {
			break
		}
		var b strings.Builder
		b.WriteString(path.Base(path.Dir(frame.File)))
		b.WriteString("/")
		b.WriteString(path.Base(frame.File))
		b.WriteString(":")
		b.WriteString(strconv.Itoa(frame.Line))
		b.WriteString(" (")
		b.WriteString(frame.Function)
		b.WriteString(")")
		lines = append(lines, b.String())
		if !more {
			break
		}
	}
	if len(lines) < 3 {
		// 保证上报器至少可以读取三层堆栈
		for len(lines) < 3 {
			lines = append(lines, "unknown")
		}
	}
	return lines
}
