package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopfront/internal/contact"
	"github.com/shopfront/internal/logger"

	"go.uber.org/zap"
)

// ContactResult 联系表单提交结果
type ContactResult struct {
	State  contact.State       `json:"state"`
	Errors contact.FieldErrors `json:"errors,omitempty"`
	Form   contact.Form        `json:"form"`
}

// ContactService 联系表单服务：仅本地校验与模拟提交，不对外发送
type ContactService struct {
	delay time.Duration
	log   *zap.SugaredLogger
}

// NewContactService 创建联系表单服务
func NewContactService(delay time.Duration, log *zap.SugaredLogger) *ContactService {
	if delay < 0 {
		delay = 0
	}
	if log == nil {
		log = logger.Component("contact")
	}
	return &ContactService{delay: delay, log: log}
}

// Submit 校验并模拟提交；校验失败时返回 ErrContactInvalid 与字段错误
func (s *ContactService) Submit(ctx context.Context, form contact.Form) (*ContactResult, error) {
	machine := contact.NewMachine()
	if err := machine.Edit(form.Normalize()); err != nil {
		return nil, err
	}
	submitted := machine.Form()
	errs, err := machine.Submit()
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return &ContactResult{State: machine.State(), Errors: errs, Form: machine.Form()}, ErrContactInvalid
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.log.Infow("contact_submitted", contactLogFields(submitted)...)
	return &ContactResult{State: machine.State(), Form: machine.Form()}, nil
}

// contactLogFields 日志只记录长度与邮箱摘要，不落原始个人信息
func contactLogFields(form contact.Form) []interface{} {
	return []interface{}{
		"full_name_length", utf8.RuneCountInString(form.FullName),
		"email_hash", emailDigest(form.Email),
		"subject_length", utf8.RuneCountInString(form.Subject),
		"body_length", utf8.RuneCountInString(form.Body),
	}
}

func emailDigest(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:6])
}
