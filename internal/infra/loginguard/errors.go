package loginguard

import "errors"

// ErrStore ошибка хранилища попыток входа
var ErrStore = errors.New("loginguard: store error")
