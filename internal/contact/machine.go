package contact

import (
	"errors"
	"sync"
)

// State 表单状态
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateInvalid    State = "invalid"
	StateSubmitted  State = "submitted"
)

// ErrInvalidTransition 当前状态不允许该操作
var ErrInvalidTransition = errors.New("contact form invalid transition")

// Machine 联系表单状态机
type Machine struct {
	mu     sync.Mutex
	state  State
	form   Form
	errors FieldErrors
}

// NewMachine 创建处于编辑状态的表单
func NewMachine() *Machine {
	return &Machine{state: StateEditing}
}

// State 当前状态
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Form 当前表单内容
func (m *Machine) Form() Form {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// Errors 最近一次校验的字段错误
func (m *Machine) Errors() FieldErrors {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(FieldErrors, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

// Edit 修改表单内容；校验失败后的字段错误保留到下一次提交
func (m *Machine) Edit(form Form) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateEditing, StateInvalid, StateSubmitted:
		m.form = form
		m.state = StateEditing
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Submit 提交表单：editing -> validating -> invalid | submitted
// 校验通过时清空表单内容
func (m *Machine) Submit() (FieldErrors, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateEditing && m.state != StateInvalid {
		return nil, ErrInvalidTransition
	}
	m.state = StateValidating
	errs := m.form.Validate()
	if len(errs) > 0 {
		m.errors = errs
		m.state = StateInvalid
		return errs, nil
	}
	m.errors = nil
	m.form = Form{}
	m.state = StateSubmitted
	return nil, nil
}
