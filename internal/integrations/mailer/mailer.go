package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client почтовый клиент для уведомлений о бронированиях.
// Доставка строго best-effort: вызывающая сторона обязана глотать ошибки,
// успешное бронирование никогда не откатывается из-за почты.
type Client struct {
	host    string
	port    int
	from    string
	auth    smtp.Auth
	enabled bool
	log     Logger
}

// NewClient создает почтовый клиент. При enabled=false все отправки
// возвращают ErrDisabled.
func NewClient(host string, port int, username, password, from string, enabled bool, log Logger) *Client {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &Client{
		host:    host,
		port:    port,
		from:    from,
		auth:    auth,
		enabled: enabled,
		log:     log,
	}
}

// AppointmentNotification данные письма о созданном бронировании
type AppointmentNotification struct {
	To            string
	RecipientName string
	EquipmentName string
	Date          string // "Monday, Jan 2"
	StartTime     string // "3:00 PM"
	EndTime       string // "4:30 PM"
}

// SendAppointmentCreated отправляет подтверждение бронирования
func (c *Client) SendAppointmentCreated(n AppointmentNotification) error {
	if !c.enabled {
		return ErrDisabled
	}

	subject := fmt.Sprintf("Equipment reservation confirmed: %s", n.EquipmentName)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"Your reservation is confirmed:\r\n\r\n"+
			"  Equipment: %s\r\n"+
			"  Date:      %s\r\n"+
			"  Time:      %s - %s\r\n\r\n"+
			"If you need to change or cancel this reservation, please use the scheduling page.\r\n",
		n.RecipientName, n.EquipmentName, n.Date, n.StartTime, n.EndTime,
	)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", c.from),
		fmt.Sprintf("To: %s", n.To),
		fmt.Sprintf("Subject: %s", subject),
		fmt.Sprintf("Date: %s", time.Now().Format(time.RFC1123Z)),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	if err := smtp.SendMail(addr, c.auth, c.from, []string{n.To}, []byte(msg)); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	c.log.Info("mailer: appointment confirmation sent to %s", n.To)
	return nil
}
