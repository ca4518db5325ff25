package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NormalEdition/Planify/internal/app"
	"github.com/NormalEdition/Planify/internal/models"
	"github.com/NormalEdition/Planify/internal/pdf"
	"github.com/NormalEdition/Planify/internal/planner"
)

var rootCmd = &cobra.Command{
	Use:   "planify",
	Short: "planify - personal task planner",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the task store server",
	Run: func(cmd *cobra.Command, args []string) {
		app.Run()
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a task",
	RunE:  runAdd,
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task (soft)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Show today's agenda and the urgency lists",
	RunE:  runAgenda,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the completion gauge and the 5-day histogram",
	RunE:  runStats,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the daily agenda sheet as PDF",
	RunE:  runExport,
}

var (
	serverFlag string
	dateFlag   string
	titleFlag  string
	descFlag   string
	levelFlag  string
	outDirFlag string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "http://127.0.0.1:8000", "Task store base URL")

	addCmd.Flags().StringVarP(&titleFlag, "title", "t", "", "Task title")
	addCmd.Flags().StringVarP(&descFlag, "desc", "d", "", "Task description")
	addCmd.Flags().StringVar(&dateFlag, "date", "", "Scheduled date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVarP(&levelFlag, "level", "l", "C", "Urgency level: C, M or L")

	agendaCmd.Flags().StringVar(&dateFlag, "date", "", "Reference date (YYYY-MM-DD, default today)")
	statsCmd.Flags().StringVar(&dateFlag, "date", "", "Reference date (YYYY-MM-DD, default today)")
	exportCmd.Flags().StringVar(&dateFlag, "date", "", "Reference date (YYYY-MM-DD, default today)")
	exportCmd.Flags().StringVarP(&outDirFlag, "out", "o", ".", "Output directory")

	rootCmd.AddCommand(serveCmd, addCmd, doneCmd, rmCmd, agendaCmd, statsCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newStore() *planner.TaskStore {
	return planner.NewTaskStore(planner.NewClient(serverFlag))
}

func refDate() (models.Date, error) {
	if dateFlag == "" {
		return models.Today(), nil
	}
	return models.ParseDate(dateFlag)
}

func runAdd(cmd *cobra.Command, args []string) error {
	day, err := refDate()
	if err != nil {
		return err
	}
	draft := models.TaskDraft{
		Title: titleFlag,
		Desc:  descFlag,
		Date:  day,
		Level: models.TaskLevel(levelFlag),
	}
	created, err := newStore().Create(context.Background(), draft)
	if err != nil {
		return err
	}
	fmt.Printf("Task %d added: %s (%s, %s)\n", created.ID, created.Title, created.Level, created.Date)
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	if err := newStore().Complete(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("Task %d marked as completed\n", id)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	if err := newStore().Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("Task %d deleted\n", id)
	return nil
}

func runAgenda(cmd *cobra.Command, args []string) error {
	day, err := refDate()
	if err != nil {
		return err
	}
	store := newStore()
	if err := store.LoadAll(context.Background()); err != nil {
		return err
	}
	parts := planner.NewPartitioner(store)

	fmt.Printf("Agenda for %s:\n", day)
	printTasks(parts.Agenda(day))
	fmt.Println("\nCritical tasks:")
	printTasks(parts.CriticalActive())
	fmt.Println("\nNon-critical tasks:")
	printTasks(parts.NonCriticalActive())
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	day, err := refDate()
	if err != nil {
		return err
	}
	store := newStore()
	if err := store.LoadAll(context.Background()); err != nil {
		return err
	}
	stats := planner.NewStatsEngine(store)

	fmt.Printf("%d%% Goal Completed\n\n", stats.CompletionPercentage(day))
	for _, b := range stats.RollingHistogram(day) {
		fmt.Printf("%-8s %d completed\n", b.Label, b.Count)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	day, err := refDate()
	if err != nil {
		return err
	}
	store := newStore()
	if err := store.LoadAll(context.Background()); err != nil {
		return err
	}
	snapshot := store.Snapshot()

	gen := pdf.NewAgendaGenerator(outDirFlag)
	path, err := gen.GenerateAgendaSheet(pdf.AgendaData{
		Day:        day,
		Percentage: planner.CompletionPercentage(snapshot, day),
		Tasks:      planner.Agenda(snapshot, day),
		Histogram:  planner.RollingHistogram(snapshot, day),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Agenda sheet written to %s\n", path)
	return nil
}

func printTasks(tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed() {
			mark = "x"
		}
		fmt.Printf("  [%s] %-4d (%s) %s - %s\n", mark, t.ID, t.Level, t.Title, t.Date)
	}
}
