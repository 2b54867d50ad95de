package loginguard

import "time"

// Policy порог неудачных попыток и длительность блокировки
type Policy struct {
	MaxAttempts int
	BlockFor    time.Duration
}

// Status состояние ключа (обычно IP клиента)
type Status struct {
	Attempts   int           // неудачных попыток в текущем окне
	Remaining  int           // попыток до блокировки
	Blocked    bool          // ключ заблокирован
	BlockedFor time.Duration // сколько ещё длится блокировка
}

func (p Policy) status(attempts int, blockedFor time.Duration) Status {
	remaining := p.MaxAttempts - attempts
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Attempts:   attempts,
		Remaining:  remaining,
		Blocked:    blockedFor > 0,
		BlockedFor: blockedFor,
	}
}
