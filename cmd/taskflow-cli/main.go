// Command taskflow-cli is a small terminal client for a running taskflow
// server. It drives the same cache and syncer the UI layer uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"taskflow/internal/cache"
	"taskflow/internal/client"
	"taskflow/internal/models"
	"taskflow/internal/syncer"
	"taskflow/internal/util"
)

const usage = `usage: taskflow-cli [flags] <command> [args]

commands:
  register            create an account (-user, -pass)
  login               obtain an access token (-user, -pass)
  list                list all tasks
  show ID             print one task
  add                 create a task (-title, -desc, -due, -status)
  set-status ID S     set the status of a task
  rm ID               delete a task
  summary             show the aggregate dashboard view
`

func main() {
	apiFlag := flag.String("api", util.EnvOrDefault("TASKFLOW_API", "http://localhost:8080"), "Base URL of the task API")
	tokenFlag := flag.String("token", util.EnvOrDefault("TASKFLOW_TOKEN", ""), "Access token from a previous login")
	userFlag := flag.String("user", "", "Username for register/login")
	passFlag := flag.String("pass", "", "Password for register/login")
	titleFlag := flag.String("title", "", "Task title for add")
	descFlag := flag.String("desc", "", "Task description for add")
	dueFlag := flag.String("due", "", "Due date for add (YYYY-MM-DD or RFC3339)")
	statusFlag := flag.String("status", "", "Task status for add (default pending)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	api := client.New(*apiFlag, client.WithToken(*tokenFlag))
	sync := syncer.New(api, cache.NewStore())
	ctx := context.Background()

	var err error
	switch flag.Arg(0) {
	case "register":
		err = runRegister(ctx, api, *userFlag, *passFlag)
	case "login":
		err = runLogin(ctx, api, *userFlag, *passFlag)
	case "list":
		err = runList(ctx, sync)
	case "show":
		if flag.NArg() < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		err = runShow(ctx, api, flag.Arg(1))
	case "add":
		err = runAdd(ctx, sync, *titleFlag, *descFlag, *dueFlag, *statusFlag)
	case "set-status":
		if flag.NArg() < 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		err = runSetStatus(ctx, sync, flag.Arg(1), flag.Arg(2))
	case "rm":
		if flag.NArg() < 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		err = sync.Delete(ctx, flag.Arg(1))
	case "summary":
		err = runSummary(ctx, sync)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, syncer.Describe(err))
		os.Exit(1)
	}
}

func runRegister(ctx context.Context, api *client.Client, user, pass string) error {
	created, err := api.Register(ctx, models.Credentials{Username: user, Password: pass})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s\n", created.Username)
	return nil
}

func runLogin(ctx context.Context, api *client.Client, user, pass string) error {
	token, err := api.Login(ctx, models.Credentials{Username: user, Password: pass})
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func runList(ctx context.Context, sync *syncer.Syncer) error {
	if err := sync.Refresh(ctx); err != nil {
		return err
	}
	for _, t := range sync.Store().State().Tasks {
		fmt.Printf("%-36s  %-12s  %-10s  %s\n", t.ID, t.Status, t.DueDate.Format(time.DateOnly), t.Title)
	}
	return nil
}

func runShow(ctx context.Context, api *client.Client, id string) error {
	t, err := api.GetTask(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n  status: %s\n  due:    %s\n", t.Title, t.Status, t.DueDate.Format(time.RFC3339))
	if t.Description != "" {
		fmt.Printf("  %s\n", t.Description)
	}
	return nil
}

func runAdd(ctx context.Context, sync *syncer.Syncer, title, desc, due, status string) error {
	dueDate, err := parseDue(due)
	if err != nil {
		return err
	}
	task, err := sync.Create(ctx, models.NewTask{
		Title:       title,
		Description: desc,
		DueDate:     dueDate,
		Status:      models.TaskStatus(status),
	})
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", task.ID)
	return nil
}

func runSetStatus(ctx context.Context, sync *syncer.Syncer, id, status string) error {
	next := models.TaskStatus(status)
	task, err := sync.Update(ctx, id, models.TaskPatch{Status: &next})
	if err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", task.ID, task.Status)
	return nil
}

func runSummary(ctx context.Context, sync *syncer.Syncer) error {
	sum, err := sync.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("total: %d  pending: %d  in-progress: %d  completed: %d\n",
		sum.TotalTasks, sum.PendingTasks, sum.InProgressTasks, sum.CompletedTasks)
	if len(sum.UpcomingTasks) > 0 {
		fmt.Println("upcoming:")
		for _, t := range sum.UpcomingTasks {
			fmt.Printf("  %s  %s\n", t.DueDate.Format(time.DateOnly), t.Title)
		}
	}
	return nil
}

func parseDue(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: -due is required", models.ErrValidation)
	}
	if d, err := time.Parse(time.DateOnly, raw); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: due date %q is not YYYY-MM-DD or RFC3339", models.ErrValidation, raw)
	}
	return d, nil
}
