package domain

// Urgency is the server-defined priority level of a task.
type Urgency string

const (
	UrgencyStandard  Urgency = "PADRAO"
	UrgencyImportant Urgency = "IMPORTANTE"
	UrgencyUrgent    Urgency = "URGENTE"
	UrgencyCritical  Urgency = "CRITICA"
)

// Urgencies lists the valid urgency levels in escalation order.
var Urgencies = []Urgency{
	UrgencyStandard,
	UrgencyImportant,
	UrgencyUrgent,
	UrgencyCritical,
}

// Valid reports whether u is one of the server-accepted urgency levels.
func (u Urgency) Valid() bool {
	for _, v := range Urgencies {
		if u == v {
			return true
		}
	}
	return false
}

// Task is the summary record returned by the paginated list endpoint.
// Wire field names follow the server contract (Portuguese keys).
type Task struct {
	ID        int     `json:"id"`
	Title     string  `json:"titulo"`
	Completed bool    `json:"concluida"`
	Urgency   Urgency `json:"urgencia"`
	DueDate   string  `json:"dataParaConclusao"`
}

// FullTask is the detail record fetched per-id. It extends the summary
// with the description and creation date.
type FullTask struct {
	Task
	Description string `json:"descricao,omitempty"`
	CreatedDate string `json:"dataDeCriacao"`
}

// TaskPage is one page of the task collection plus pagination metadata.
type TaskPage struct {
	Tasks       []Task `json:"tarefas"`
	TotalTasks  int    `json:"totalDeTarefas"`
	CurrentPage int    `json:"paginaAtual"`
	TotalPages  int    `json:"totalDePaginas"`
}

// CreateTaskData is the payload for creating a task.
type CreateTaskData struct {
	Title       string  `json:"titulo"`
	Description string  `json:"descricao,omitempty"`
	Urgency     Urgency `json:"urgencia"`
	DueDate     string  `json:"dataParaConclusao"`
}

// UpdateTaskData is the partial payload for updating a task.
// Zero-valued fields are omitted from the request body.
type UpdateTaskData struct {
	Title       string  `json:"titulo,omitempty"`
	Description string  `json:"descricao,omitempty"`
	Urgency     Urgency `json:"urgencia,omitempty"`
	DueDate     string  `json:"dataParaConclusao,omitempty"`
	Completed   *bool   `json:"concluida,omitempty"`
}
