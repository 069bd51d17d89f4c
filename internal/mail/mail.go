package mail

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"syscall"

	"cheese-shop/internal/config"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// smtpConn is the wire-level SMTP session. *net/smtp.Client satisfies it;
// tests substitute a recording fake to prove teardown runs on every path.
type smtpConn interface {
	StartTLS(cfg *tls.Config) error
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

var _ smtpConn = (*smtp.Client)(nil)

// Dialer opens a fresh SMTP session per message.
type Dialer interface {
	Dial() (smtpConn, error)
}

type netDialer struct {
	addr string
}

func (d *netDialer) Dial() (smtpConn, error) {
	return smtp.Dial(d.addr)
}

// Dispatcher sends transactional feedback mail through the configured relay.
type Dispatcher struct {
	dialer Dialer
	cfg    *config.Config
	log    *logrus.Logger
}

func NewDispatcher(cfg *config.Config, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		dialer: &netDialer{addr: cfg.SMTPAddr()},
		cfg:    cfg,
		log:    log,
	}
}

// SendFeedback opens a relay session, upgrades it to TLS, authenticates with
// the shop's sender credentials and submits a thank-you note addressed to the
// user's email. Session teardown is attempted on every exit path; a teardown
// error is logged but never overrides a send-phase error.
func (d *Dispatcher) SendFeedback(username, recipientEmail string) error {
	conn, err := d.dialer.Dial()
	if err != nil {
		return fmt.Errorf("dial smtp relay: %w", err)
	}

	sendErr := d.send(conn, username, recipientEmail)
	termErr := quitSession(conn)

	if sendErr != nil {
		if termErr != nil {
			d.log.Warnf("smtp teardown after failed send: %v", termErr)
		}
		return sendErr
	}
	if termErr != nil {
		return termErr
	}
	d.log.Infof("Feedback mail delivered to %s", recipientEmail)
	return nil
}

func (d *Dispatcher) send(conn smtpConn, username, recipientEmail string) error {
	host := d.cfg.SMTPHost()
	if err := conn.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	auth := smtp.PlainAuth("", d.cfg.SMTP.Sender, d.cfg.SMTP.SenderPassword, host)
	if err := conn.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	msg, err := composeFeedback(d.cfg.SMTP.Sender, recipientEmail, username)
	if err != nil {
		return fmt.Errorf("compose message: %w", err)
	}
	if err := conn.Mail(d.cfg.SMTP.Sender); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := conn.Rcpt(recipientEmail); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := conn.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish body: %w", err)
	}
	return nil
}

func composeFeedback(sender, recipient, username string) ([]byte, error) {
	e := email.NewEmail()
	e.From = sender
	e.To = []string{recipient}
	e.Subject = "Feedback"
	e.Text = []byte(fmt.Sprintf(
		"Dear %s, thank you for your feedback. We will respond to your request shortly.",
		username,
	))
	return e.Bytes()
}

// quitSession gracefully terminates the relay session. QUIT must answer with
// the closing status (221); any other reply is a teardown error. A peer that
// already dropped the connection is an acceptable terminal state. The
// connection is closed in every case.
func quitSession(conn smtpConn) error {
	err := conn.Quit()
	if err == nil {
		return nil
	}
	defer conn.Close()
	if isDisconnect(err) {
		return nil
	}
	return fmt.Errorf("smtp quit: %w", err)
}

func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET)
}
