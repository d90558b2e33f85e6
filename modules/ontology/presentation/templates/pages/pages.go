package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/xe-labs/ontoview/modules/ontology/presentation/templates/components"
	"github.com/xe-labs/ontoview/modules/ontology/presentation/templates/layouts"
	"github.com/xe-labs/ontoview/modules/ontology/presentation/viewmodels"
	"github.com/xe-labs/ontoview/pkg/composables"
	"github.com/xe-labs/ontoview/pkg/spotlight"
)

func Index() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
			w := components.NewWriter(out)
			w.Raw("<p>").Text(pageCtx.T("Index.Intro")).Raw(`</p><ul class="index-links">`)
			for _, item := range composables.UseNavItems(ctx) {
				if item.Href == "/" {
					continue
				}
				w.Raw(`<li><a href="`, templ.EscapeString(item.Href), `">`).Text(item.Name).Raw("</a></li>")
			}
			return w.Raw("</ul>").Err()
		})
		return layouts.Base(pageCtx.T("Index.Title"), body).Render(ctx, out)
	})
}

type ProjectsPageProps struct {
	Projects []viewmodels.Project
}

func ProjectsTable(props *ProjectsPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		rows := make([][]components.Cell, 0, len(props.Projects))
		for _, p := range props.Projects {
			tree := components.Cell{}
			if p.TreeURL != "" {
				tree = components.Cell{Text: pageCtx.T("Projects.Tree"), Href: p.TreeURL}
			}
			rows = append(rows, []components.Cell{
				{Text: p.ID}, {Text: p.Name}, {Text: p.Description}, {Text: p.Budget}, tree,
			})
		}
		headers := []string{
			pageCtx.T("Projects.Code"),
			pageCtx.T("Projects.Name"),
			pageCtx.T("Projects.Desc"),
			pageCtx.T("Projects.Budget"),
			pageCtx.T("Projects.Tree"),
		}
		return components.Table(headers, rows, pageCtx.T("Common.Empty")).Render(ctx, out)
	})
}

func Projects(props *ProjectsPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		return layouts.Base(pageCtx.T("Projects.Title"), ProjectsTable(props)).Render(ctx, out)
	})
}

type EmployeesPageProps struct {
	Employees []viewmodels.Employee
}

func EmployeesTable(props *EmployeesPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		rows := make([][]components.Cell, 0, len(props.Employees))
		for _, e := range props.Employees {
			rows = append(rows, []components.Cell{{Text: e.Name}, {Text: e.Position}})
		}
		headers := []string{pageCtx.T("Employees.Name"), pageCtx.T("Employees.Position")}
		return components.Table(headers, rows, pageCtx.T("Common.Empty")).Render(ctx, out)
	})
}

func Employees(props *EmployeesPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		return layouts.Base(pageCtx.T("Employees.Title"), EmployeesTable(props)).Render(ctx, out)
	})
}

type WorkloadPageProps struct {
	Workload  []viewmodels.Workload
	ExportURL string
}

func WorkloadTable(props *WorkloadPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		rows := make([][]components.Cell, 0, len(props.Workload))
		for _, wl := range props.Workload {
			rows = append(rows, []components.Cell{{Text: wl.Employee}, {Text: wl.Project}, {Text: wl.Task}})
		}
		headers := []string{
			pageCtx.T("Workload.Employee"),
			pageCtx.T("Workload.Project"),
			pageCtx.T("Workload.Task"),
		}
		return components.Table(headers, rows, pageCtx.T("Common.Empty")).Render(ctx, out)
	})
}

func Workload(props *WorkloadPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
			w := components.NewWriter(out)
			if props.ExportURL != "" {
				w.Raw(`<p><a class="export" href="`, templ.EscapeString(props.ExportURL), `">`).
					Text(pageCtx.T("Workload.Export")).Raw("</a></p>")
			}
			return w.Render(ctx, WorkloadTable(props)).Err()
		})
		return layouts.Base(pageCtx.T("Workload.Title"), body).Render(ctx, out)
	})
}

type ProjectTreePageProps struct {
	Tree    viewmodels.ProjectTree
	BackURL string
}

func ProjectTreeContent(props *ProjectTreePageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		w := components.NewWriter(out)
		w.Raw(`<h2 class="project-name">`).Text(props.Tree.ProjectName).Raw("</h2>")
		if len(props.Tree.Groups) == 0 {
			w.Raw(`<p class="empty">`).Text(pageCtx.T("ProjectTree.NoTaskSets")).Raw("</p>")
		} else {
			w.Raw(`<ul class="tree">`)
			for _, g := range props.Tree.Groups {
				w.Raw(`<li class="task-set"><span class="task-set-name">`).Text(g.Name).Raw("</span><ul>")
				for _, task := range g.Tasks {
					w.Raw(`<li class="task">`).Text(task).Raw("</li>")
				}
				w.Raw("</ul></li>")
			}
			w.Raw("</ul>")
		}
		if props.BackURL != "" {
			w.Raw(`<p><a href="`, templ.EscapeString(props.BackURL), `">`).Text(pageCtx.T("Common.Back")).Raw("</a></p>")
		}
		return w.Err()
	})
}

func ProjectTree(props *ProjectTreePageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		return layouts.Base(pageCtx.T("ProjectTree.Title"), ProjectTreeContent(props)).Render(ctx, out)
	})
}

type SpotlightPageProps struct {
	Query string
	Items []spotlight.Item
}

func SpotlightResults(props *SpotlightPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := components.NewWriter(out)
		if len(props.Items) == 0 {
			msg := "Nothing found"
			if pageCtx, ok := composables.TryUsePageCtx(ctx); ok {
				msg = pageCtx.T("Common.NoResults")
			}
			return w.Raw(`<p class="empty">`).Text(msg).Raw("</p>").Err()
		}
		w.Raw(`<ul class="spotlight-results">`)
		for _, it := range props.Items {
			w.Render(ctx, it)
		}
		return w.Raw("</ul>").Err()
	})
}

func Spotlight(props *SpotlightPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		pageCtx := composables.UsePageCtx(ctx)
		return layouts.Base(pageCtx.T("Common.Search")+": "+props.Query, SpotlightResults(props)).Render(ctx, out)
	})
}

// Error renders a full page for a failed request. The status code must be
// written by the caller.
func Error(title, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
			return components.NewWriter(out).Raw(`<p class="error">`).Text(message).Raw("</p>").Err()
		})
		return layouts.Base(title, body).Render(ctx, out)
	})
}
