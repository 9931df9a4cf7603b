package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/locvowork/practiceapp/internal/bootstrap"
	"github.com/locvowork/practiceapp/internal/config"
	"github.com/locvowork/practiceapp/internal/database"
	"github.com/locvowork/practiceapp/internal/logger"
)

func main() {
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	preset := flag.String("preset", "medium", "Data preset: small, medium, large")
	departments := flag.Int("departments", 0, "Number of departments (overrides preset)")
	employees := flag.Int("employees", 0, "Number of employees (overrides preset)")
	jobs := flag.Int("jobs", 0, "Number of jobs per employee (overrides preset)")
	yes := flag.Bool("yes", false, "Skip the confirmation prompt of clear")

	flag.Parse()

	ctx := context.Background()

	fmt.Println("HR Data Seeder")
	fmt.Println(strings.Repeat("=", 50))

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	if config.DefaultEnvConfig.STORE_DRIVER == config.StoreDriverMemory {
		logger.WarnLog(ctx, "STORE_DRIVER is memory; seeded data is discarded on exit")
	}

	seeder := database.NewDataSeeder(app.Repos, app.Archive)

	switch *action {
	case "seed":
		performSeed(ctx, seeder, *preset, *departments, *employees, *jobs)
	case "clear":
		performClear(ctx, seeder, *yes)
	default:
		fmt.Printf("Unknown action: %s\n", *action)
		flag.PrintDefaults()
		return
	}

	fmt.Println("\nDone!")
}

func performSeed(ctx context.Context, seeder *database.DataSeeder, preset string, departments, employees, jobs int) {
	numDepartments, numEmployees, jobsPerEmployee := database.GetPresetConfig(database.SeedPreset(preset))
	if departments > 0 {
		numDepartments = departments
	}
	if employees > 0 {
		numEmployees = employees
	}
	if jobs > 0 {
		jobsPerEmployee = jobs
	}
	fmt.Printf("Seeding %d departments, %d employees, %d jobs per employee\n",
		numDepartments, numEmployees, jobsPerEmployee)

	stats, err := seeder.SeedData(ctx, numDepartments, numEmployees, jobsPerEmployee)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	fmt.Printf("Seeded %+v\n", stats)
}

func performClear(ctx context.Context, seeder *database.DataSeeder, yes bool) {
	if !yes {
		fmt.Println("This will delete all employees, jobs, job histories and departments!")
		fmt.Print("Continue? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		if response != "yes" {
			fmt.Println("Cancelled.")
			return
		}
	}

	if err := seeder.ClearData(ctx); err != nil {
		log.Fatalf("Clear failed: %v", err)
	}
}
