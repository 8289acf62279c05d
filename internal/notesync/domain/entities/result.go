package entities

// Void пустая полезная нагрузка Result.
type Void struct{}

// Result итог удаленной операции: либо значение, либо понятное пользователю сообщение.
type Result[T any] struct {
	value   T
	message string
	ok      bool
}

// Ok создает успешный результат.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err создает неуспешный результат.
func Err[T any](message string) Result[T] {
	return Result[T]{message: message}
}

// IsOk сообщает, успешен ли результат.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// Value возвращает значение успешного результата.
func (r Result[T]) Value() T {
	return r.value
}

// Message возвращает сообщение неуспешного результата.
func (r Result[T]) Message() string {
	return r.message
}
