package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Luishgfarias/todo-front/internal/notify"
	"github.com/Luishgfarias/todo-front/internal/state"
)

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenTasks
	screenTaskForm
	screenProfile
)

// authDoneMsg carries the result of a login attempt.
type authDoneMsg struct {
	err error
}

// registerDoneMsg carries the result of an account creation attempt.
type registerDoneMsg struct {
	err error
}

// sessionRefreshedMsg signals that the profile load for a persisted
// token finished, successfully or not.
type sessionRefreshedMsg struct{}

// tasksRefreshedMsg signals that a task store action finished and the
// list should re-render.
type tasksRefreshedMsg struct{}

// taskSavedMsg carries the result of a create or edit form submit.
type taskSavedMsg struct {
	err error
}

// accountDeletedMsg carries the result of account deletion.
type accountDeletedMsg struct {
	err error
}

// toastExpiredMsg clears the toast line after its display window.
type toastExpiredMsg struct {
	id int
}

const toastDuration = 3 * time.Second

// App is the root Bubbletea model. It owns screen routing, the toast
// line and the auth guard; the per-screen models own their keys.
type App struct {
	session *state.SessionStore
	tasks   *state.TaskStore
	queue   *notify.Queue

	screen   screen
	login    loginModel
	register registerModel
	list     tasksModel
	form     taskFormModel
	profile  profileModel

	toast    *notify.Notification
	toastID  int
	width    int
	height   int
}

// NewApp creates the TUI application. The starting screen follows the
// persisted session: a held token goes straight to the task list.
func NewApp(session *state.SessionStore, tasks *state.TaskStore, queue *notify.Queue) App {
	a := App{
		session:  session,
		tasks:    tasks,
		queue:    queue,
		login:    newLoginModel(session),
		register: newRegisterModel(session),
		list:     newTasksModel(tasks),
		form:     newTaskFormModel(tasks),
		profile:  newProfileModel(session),
	}
	if session.IsAuthenticated() {
		a.screen = screenTasks
	}
	return a
}

func (a App) Init() tea.Cmd {
	if !a.session.IsAuthenticated() {
		return nil
	}
	session := a.session
	tasks := a.tasks
	return tea.Batch(
		func() tea.Msg {
			session.LoadCurrentUser(context.Background())
			return sessionRefreshedMsg{}
		},
		func() tea.Msg {
			page, _ := tasks.Page()
			tasks.FetchTasks(context.Background(), page, tasks.SearchTerm())
			return tasksRefreshedMsg{}
		},
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.width = msg.Width
		a.list.height = msg.Height - 4
		return a, nil

	case toastExpiredMsg:
		if msg.id == a.toastID {
			a.toast = nil
		}
		return a, nil

	case authDoneMsg:
		a.login.submitting = false
		if msg.err == nil {
			a.screen = screenTasks
			a.login = newLoginModel(a.session)
			return a, tea.Batch(a.fetchTasksCmd(1, ""), a.drainToasts())
		}
		return a, a.drainToasts()

	case registerDoneMsg:
		a.register.submitting = false
		if msg.err == nil {
			// Account exists server-side; the user still logs in.
			a.screen = screenLogin
			a.register = newRegisterModel(a.session)
		}
		return a, a.drainToasts()

	case sessionRefreshedMsg:
		if !a.session.IsAuthenticated() {
			a.toLogin()
		}
		return a, a.drainToasts()

	case tasksRefreshedMsg:
		return a, a.drainToasts()

	case taskSavedMsg:
		a.form.submitting = false
		if msg.err == nil {
			a.screen = screenTasks
		}
		return a, a.drainToasts()

	case profileSavedMsg:
		a.profile.submitting = false
		if msg.err == nil {
			a.profile.editing = false
		}
		return a, a.drainToasts()

	case accountDeletedMsg:
		a.profile.confirming = false
		a.profile.submitting = false
		if msg.err == nil {
			a.toLogin()
		}
		return a, a.drainToasts()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "q" && !a.isEditing() {
			return a, tea.Quit
		}
		return a.routeKey(msg)
	}

	return a, nil
}

// routeKey dispatches a keystroke to the active screen and applies the
// screen transitions the sub-models request.
func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case screenLogin:
		a.login, cmd = a.login.Update(msg)
		if a.login.wantRegister {
			a.login.wantRegister = false
			a.screen = screenRegister
		}

	case screenRegister:
		a.register, cmd = a.register.Update(msg)
		if a.register.wantLogin {
			a.register.wantLogin = false
			a.screen = screenLogin
		}

	case screenTasks:
		a.list, cmd = a.list.Update(msg)
		switch {
		case a.list.wantNew:
			a.list.wantNew = false
			a.form = newTaskFormModel(a.tasks)
			a.screen = screenTaskForm
		case a.list.wantEdit != nil:
			task := *a.list.wantEdit
			a.list.wantEdit = nil
			a.form = newTaskFormModel(a.tasks)
			a.form.loadTask(task)
			a.screen = screenTaskForm
		case a.list.wantProfile:
			a.list.wantProfile = false
			a.profile = newProfileModel(a.session)
			a.screen = screenProfile
		}

	case screenTaskForm:
		a.form, cmd = a.form.Update(msg)
		if a.form.cancelled {
			a.form.cancelled = false
			a.screen = screenTasks
		}

	case screenProfile:
		a.profile, cmd = a.profile.Update(msg)
		if a.profile.wantBack {
			a.profile.wantBack = false
			a.screen = screenTasks
		}
		if a.profile.wantLogout {
			a.profile.wantLogout = false
			a.session.Logout()
			a.tasks.ClearStore()
			a.toLogin()
		}
	}
	return a, tea.Batch(cmd, a.drainToasts())
}

// toLogin resets to the anonymous state. The task cache is cleared so
// nothing leaks into the next account's session.
func (a *App) toLogin() {
	a.tasks.ClearStore()
	a.screen = screenLogin
	a.login = newLoginModel(a.session)
}

func (a *App) fetchTasksCmd(page int, term string) tea.Cmd {
	tasks := a.tasks
	return func() tea.Msg {
		tasks.FetchTasks(context.Background(), page, term)
		return tasksRefreshedMsg{}
	}
}

// drainToasts moves queued notifications onto the toast line. Only the
// newest is shown; older ones from the same action are superseded.
func (a *App) drainToasts() tea.Cmd {
	notes := a.queue.Drain()
	if len(notes) == 0 {
		return nil
	}
	last := notes[len(notes)-1]
	a.toast = &last
	a.toastID++
	id := a.toastID
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (a App) isEditing() bool {
	switch a.screen {
	case screenLogin, screenRegister, screenTaskForm:
		return true
	case screenTasks:
		return a.list.searching
	case screenProfile:
		return a.profile.editing
	}
	return false
}

func (a App) View() string {
	header := " " + titleStyle.Render("T O D O")
	if u := a.session.User(); u != nil {
		header += "  " + metaStyle.Render(u.Name)
	}

	var body, help string
	switch a.screen {
	case screenLogin:
		body = a.login.View()
		help = " " + helpEntry("tab", "campo") + "  " + helpEntry("enter", "entrar") + "  " + helpEntry("ctrl+r", "criar conta") + "  " + helpEntry("ctrl+c", "sair")
	case screenRegister:
		body = a.register.View()
		help = " " + helpEntry("tab", "campo") + "  " + helpEntry("enter", "criar") + "  " + helpEntry("esc", "voltar") + "  " + helpEntry("ctrl+c", "sair")
	case screenTasks:
		body = a.list.View()
		help = a.list.helpLine()
	case screenTaskForm:
		body = a.form.View()
		help = " " + helpEntry("tab", "campo") + "  " + helpEntry("h/l", "urgência") + "  " + helpEntry("ctrl+s", "salvar") + "  " + helpEntry("esc", "cancelar")
	case screenProfile:
		body = a.profile.View()
		help = a.profile.helpLine()
	}

	toastLine := ""
	if a.toast != nil {
		if a.toast.Level == notify.LevelError {
			toastLine = " " + toastErrStyle.Render(a.toast.Text)
		} else {
			toastLine = " " + toastOkStyle.Render(a.toast.Text)
		}
	}

	// Chrome: header(1) + blank(1) + toast(1) + help(1)
	if a.height > 0 {
		body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")
	}
	return header + "\n\n" + body + "\n" + toastLine + "\n" + help
}
