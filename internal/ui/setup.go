package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SetupResult 入桌前收集的信息
type SetupResult struct {
	Name       string
	InviteCode string
	Aborted    bool
}

// SetupModel 入桌前的表单：昵称，以及加入模式下的房间号。
// 已经由参数或配置给出的项直接跳过。
type SetupModel struct {
	needCode bool

	nameInput textinput.Model
	codeInput textinput.Model
	focusCode bool

	result SetupResult
	done   bool
}

// NewSetup 创建表单。name 非空时只询问房间号，needCode 为 false 时只询问昵称。
func NewSetup(name string, needCode bool) SetupModel {
	ni := textinput.New()
	ni.Placeholder = "你的昵称"
	ni.CharLimit = 20
	ni.SetValue(name)

	ci := textinput.New()
	ci.Placeholder = "6 位房间号"
	ci.CharLimit = 6

	m := SetupModel{needCode: needCode, nameInput: ni, codeInput: ci}
	if name != "" && needCode {
		m.focusCode = true
		m.codeInput.Focus()
	} else {
		m.nameInput.Focus()
	}
	return m
}

// Result 表单结果，程序退出后读取
func (m SetupModel) Result() SetupResult {
	return m.result
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.result.Aborted = true
			m.done = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focusCode {
		m.codeInput, cmd = m.codeInput.Update(msg)
	} else {
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return m, cmd
}

func (m SetupModel) submit() (tea.Model, tea.Cmd) {
	if !m.focusCode {
		if strings.TrimSpace(m.nameInput.Value()) == "" {
			return m, nil
		}
		if m.needCode {
			// 昵称填完，切到房间号
			m.focusCode = true
			m.nameInput.Blur()
			return m, m.codeInput.Focus()
		}
	} else if strings.TrimSpace(m.codeInput.Value()) == "" {
		return m, nil
	}

	m.result = SetupResult{
		Name:       strings.TrimSpace(m.nameInput.Value()),
		InviteCode: strings.TrimSpace(m.codeInput.Value()),
	}
	m.done = true
	return m, tea.Quit
}

func (m SetupModel) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle("🃏 Remi"))
	sb.WriteString("\n\n")

	form := []string{"昵称: " + m.nameInput.View()}
	if m.needCode {
		form = append(form, "房间号: "+m.codeInput.View())
	}
	sb.WriteString(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, form...)))
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("enter 确认 · esc 退出"))

	return docStyle.Render(sb.String())
}
