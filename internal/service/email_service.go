package service

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/springboardmentor4545/Brag-Board-Team6/config"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/common"
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/util"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// EmailService 负责发送通知邮件，发送失败不影响主流程
type EmailService struct {
	smtpHost string
	smtpPort int
	username string
	password string
}

func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost: config.AppConfig.SMTPHost,
		smtpPort: config.AppConfig.SMTPPort,
		username: config.AppConfig.SMTPUsername,
		password: config.AppConfig.SMTPPassword,
	}
}

// SendWelcomeEmail 注册成功后发送欢迎邮件
func (s *EmailService) SendWelcomeEmail(email, name string) {
	subject := "欢迎加入 BragBoard"
	body := fmt.Sprintf("亲爱的 %s，\n\n欢迎加入 BragBoard！快去表扬你的同事吧：\n%s",
		name, config.AppConfig.FrontendURL)
	s.sendEmailAsync(email, subject, body)
}

// SendRecognitionEmail 当用户被表扬时通知对方
func (s *EmailService) SendRecognitionEmail(email, recipientName, senderName, message string) {
	subject := fmt.Sprintf("%s 在 BragBoard 上表扬了你", senderName)
	body := fmt.Sprintf("亲爱的 %s，\n\n%s 刚刚表扬了你：\n\n“%s”\n\n去看看吧：%s",
		recipientName, senderName, message, config.AppConfig.FrontendURL)
	s.sendEmailAsync(email, subject, body)
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	if s.username == "" || s.password == "" {
		util.Logger.Debug("SMTP 未配置，跳过邮件发送", zap.String("to", to))
		return
	}
	go func() {
		err := common.WithRetry(func() error {
			return s.sendEmail(to, subject, body)
		}, 3)
		if err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	util.Logger.Info("开始发送邮件",
		zap.String("to", to),
		zap.String("subject", subject))

	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = true
	d.TLSConfig = &tls.Config{ServerName: s.smtpHost}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to))
	return nil
}
