package viewmodels

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc"`
	Budget      string `json:"budget"`
	// TreeURL is empty when ID cannot be used as a project tree path.
	TreeURL string `json:"-"`
}

type Employee struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

type Workload struct {
	Employee string `json:"employee"`
	Project  string `json:"project"`
	Task     string `json:"task"`
}

type TaskGroup struct {
	Name  string   `json:"name"`
	Tasks []string `json:"tasks"`
}

type ProjectTree struct {
	ProjectID   string      `json:"project_id"`
	ProjectName string      `json:"project_name"`
	Groups      []TaskGroup `json:"tree"`
}
