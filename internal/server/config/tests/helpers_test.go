package tests

import "errors"

// errExpected текст для t.Fatalf, когда ошибка ожидалась, а пришёл nil.
var errExpected = errors.New("expected error")
