package mailer

import "errors"

var (
	// ErrDisabled возвращается, когда отправка почты выключена конфигурацией
	ErrDisabled = errors.New("mailer: delivery disabled")

	// ErrSend возвращается при ошибке отправки письма
	ErrSend = errors.New("mailer: failed to send message")
)
