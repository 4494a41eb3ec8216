package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/campus-hub/registrar-service/internal/config"
	"github.com/campus-hub/registrar-service/internal/reports"
	"github.com/campus-hub/registrar-service/internal/repositories"
	"github.com/campus-hub/registrar-service/internal/repositories/sqlite"
	"github.com/campus-hub/registrar-service/internal/services"
	"github.com/campus-hub/registrar-service/internal/validator"
	"github.com/campus-hub/registrar-service/pkg"
)

const usage = `Usage: registrar <command> [flags]

Commands:
  init              create the database schema and the first admin account
  add-student       register one student (-last, -first, -email)
  list-students     list students (-q filters by matricule or name)
  import-students   load students from a CSV file (-file)
  export-students   write the student register as CSV (-out)
  add-track         create a track (-code, -name)
  add-level         create a level (-code, -name, -order)
  enroll            enroll a student (-student, -track, -level, -year)
  add-module        create a module (-code, -name, -coef, -credits)
  seed-modules      load a module catalogue from a JSON file (-file)
  add-grade         record a grade (-student, -module, -value, -type, -year)
  grade-history     print the audit trail of a grade (-grade)
  average           print a student's weighted average (-student)
  record-absence    record an absence (-student, -module, -date, -justified, -reason)
  alerts            list students at or above an absence threshold (-threshold)
  export            write an XLSX workbook (-kind students|grades|absences, -out)
  transcript        render a grade transcript PDF (-student, -out)
  attestation       render an enrollment certificate PDF (-student, -year, -out)
  stats             print the dashboard summary

Mutating commands require -user and -password credentials.`

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	repoManager := sqlite.NewRepositoryManager(sqlite.RepositoryConfig{
		DB:                db,
		SeedAdminUsername: cfg.SeedAdminUsername,
		SeedAdminPassword: cfg.SeedAdminPassword,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	serviceManager := services.NewServiceManager(repoManager.GetRepository(), logger, validator.New())
	ctx := context.Background()
	if err := serviceManager.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	app := &cli{
		cfg:      cfg,
		logger:   logger,
		services: serviceManager,
	}

	if err := app.run(ctx, command, args); err != nil {
		logger.Error("Command failed", "command", command, "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Warn("Shutdown incomplete", "error", err)
	}
	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Warn("Failed to close database", "error", err)
	}
}

type cli struct {
	cfg      *config.Config
	logger   *slog.Logger
	services services.ServiceManager
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "init":
		// Schema and seeding already ran during startup.
		fmt.Println("database ready:", c.cfg.DatabasePath)
		return nil
	case "add-student":
		return c.addStudent(ctx, args)
	case "list-students":
		return c.listStudents(ctx, args)
	case "add-track":
		return c.addTrack(ctx, args)
	case "add-level":
		return c.addLevel(ctx, args)
	case "enroll":
		return c.enroll(ctx, args)
	case "add-module":
		return c.addModule(ctx, args)
	case "add-grade":
		return c.addGrade(ctx, args)
	case "grade-history":
		return c.gradeHistory(ctx, args)
	case "average":
		return c.average(ctx, args)
	case "record-absence":
		return c.recordAbsence(ctx, args)
	case "alerts":
		return c.alerts(ctx, args)
	case "import-students":
		return c.importStudents(ctx, args)
	case "export-students":
		return c.exportStudents(ctx, args)
	case "seed-modules":
		return c.seedModules(ctx, args)
	case "export":
		return c.exportWorkbook(ctx, args)
	case "transcript":
		return c.transcript(ctx, args)
	case "attestation":
		return c.attestation(ctx, args)
	case "stats":
		return c.stats(ctx)
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// authenticate gates mutating commands behind the account store.
func (c *cli) authenticate(ctx context.Context, user, password string) (*services.Session, error) {
	if user == "" || password == "" {
		return nil, fmt.Errorf("-user and -password are required")
	}
	return c.services.Auth().Authenticate(ctx, user, password)
}

func authFlags(fs *flag.FlagSet) (user, password *string) {
	return fs.String("user", "", "account username"),
		fs.String("password", "", "account password")
}

func (c *cli) addStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-student", flag.ExitOnError)
	user, password := authFlags(fs)
	last := fs.String("last", "", "family name")
	first := fs.String("first", "", "given name")
	email := fs.String("email", "", "email address (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := c.authenticate(ctx, *user, *password)
	if err != nil {
		return err
	}
	defer c.services.Auth().Logout(session.Token)

	req := &services.StudentCreateRequest{LastName: *last, FirstName: *first}
	if *email != "" {
		req.Email = email
	}
	student, err := c.services.Students().Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("created student %s (%s %s)\n", student.Matricule, student.LastName, student.FirstName)
	return nil
}

func (c *cli) listStudents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list-students", flag.ExitOnError)
	query := fs.String("q", "", "matricule or name filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	students, total, err := c.services.Students().List(ctx, repositories.StudentFilters{Query: *query})
	if err != nil {
		return err
	}
	for _, s := range students {
		email := ""
		if s.Email != nil {
			email = *s.Email
		}
		fmt.Printf("%d\t%s\t%s %s\t%s\t%s\n", s.ID, s.Matricule, s.LastName, s.FirstName, email, s.Status)
	}
	fmt.Printf("%d student(s)\n", total)
	return nil
}

func (c *cli) addTrack(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-track", flag.ExitOnError)
	user, password := authFlags(fs)
	code := fs.String("code", "", "track code")
	name := fs.String("name", "", "track name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := c.authenticate(ctx, *user, *password)
	if err != nil {
		return err
	}
	defer c.services.Auth().Logout(session.Token)

	track, err := c.services.Academics().CreateTrack(ctx, &services.TrackCreateRequest{Code: *code, Name: *name})
	if err != nil {
		return err
	}
	fmt.Printf("created track %d (%s)\n", track.ID, track.Code)
	return nil
}

func (c *cli) addLevel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-level", flag.ExitOnError)
	user, password := authFlags(fs)
	code := fs.String("code", "", "level code")
	name := fs.String("name", "", "level name")
	order := fs.Int("order", 0, "display order (0 for none)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := c.authenticate(ctx, *user, *password)
	if err != nil {
		return err
	}
	defer c.services.Auth().Logout(session.Token)

	req := &services.LevelCreateRequest{Code: *code, Name: *name}
	if *order > 0 {
		req.SortOrder = order
	}
	level, err := c.services.Academics().CreateLevel(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("created level %d (%s)\n", level.ID, level.Code)
	return nil
}

func (c *cli) enroll(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enroll", flag.ExitOnError)
	user, password := authFlags(fs)
	student := fs.Uint("student", 0, "student id")
	track := fs.Uint("track", 0, "track id")
	level := fs.Uint("level", 0, "level id")
	year := fs.String("year", "", "academic-year label, e.g. 2025-2026")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := c.authenticate(ctx, *user, *password)
	if err != nil {
		return err
	}
	defer c.services.Auth().Logout(session.Token)

	enrollment, err := c.services.Academics().CreateEnrollment(ctx, &services.EnrollmentCreateRequest{
		StudentID:    uint(*student),
		TrackID:      uint(*track),
		LevelID:      uint(*level),
		AcademicYear: *year,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created enrollment %d\n", enrollment.ID)
	return nil
}

func (c *cli) addModule(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-module", flag.ExitOnError)
	user, password := authFlags(fs)
	code := fs.String("code", "", "module code")
	name := fs.String("name", "", "module name")
	coef := fs.Float64("coef", 1, "weighting coefficient")
	credits := fs.Int("credits", 0, "credit count (0 for none)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := c.authenticate(ctx, *user, *password)
	if err != nil {
		return err
	}
	defer c.services.Auth().Logout(session.Token)

	req := &services.ModuleCreateRequest{Code: *code, Name: *name, Coefficient: coef}
	if *credits > 0 {
		req.Credits = credits
	}
	module, err := c.services.Modules().Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("created module %d (%s, coef %.1f)\n", module.ID, module.Code, module.Coefficient)
	return nil
}

func (c *cli) addGrade(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-grade", flag.ExitOnError)
	user, password := authFlags(fs)
	student := fs.Uint("student", 0, "student id")
	module := fs.Uint("module", 0, "module id")
	value := fs.Float64("value", -1, "grade value on the 0-20 scale")
	evalType := fs.String("type", "", "evaluation type (optional)")
	year := fs.String("year", "", "academic-year label (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := c.authenticate(ctx, *user, *password)
	if err != nil {
		return err
	}
	defer c.services.Auth().Logout(session.Token)

	req := &services.GradeCreateRequest{
		StudentID: uint(*student),
		ModuleID:  uint(*module),
		Value:     value,
	}
	if *evalType != "" {
		req.EvalType = evalType
	}
	if *year != "" {
		req.AcademicYear = year
	}
	grade, err := c.services.Grades().Create(ctx, req, session.Username)
	if err != nil {
		return err
	}
	fmt.Printf("recorded grade %d (%.2f)\n", grade.ID, grade.Value)
	return nil
}

func (c *cli) gradeHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("grade-history", flag.ExitOnError)
	gradeID := fs.Uint("grade", 0, "grade id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *gradeID == 0 {
		return fmt.Errorf("-grade is required")
	}

	records, err := c.services.Grades().History(ctx, uint(*gradeID))
	if err != nil {
		return err
	}
	for _, r := range records {
		old, next := "", ""
		if r.OldValue != nil {
			old = *r.OldValue
		}
		if r.NewValue != nil {
			next = *r.NewValue
		}
		fmt.Printf("%s\t%s\t%s\told=%s\tnew=%s\n", r.ChangedAt, r.Action, r.ChangedBy, old, next)
	}
	return nil
}

func (c *cli) average(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("average", flag.ExitOnError)
	student := fs.Uint("student", 0, "student id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *student == 0 {
		return fmt.Errorf("-student is required")
	}

	avg, err := c.services.Grades().Average(ctx, uint(*student))
	if err != nil {
		return err
	}
	if !avg.Defined {
		fmt.Println("average undefined (no weighted grades)")
		return nil
	}
	fmt.Printf("average %.2f / 20 over %d grade(s), total weight %.1f\n", avg.Average, avg.GradeCount, avg.TotalWeight)
	return nil
}

func (c *cli) recordAbsence(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("record-absence", flag.ExitOnError)
	user, password := authFlags(fs)
	student := fs.Uint("student", 0, "student id")
	module := fs.Uint("module", 0, "module id")
	date := fs.String("date", "", "absence date, e.g. 2026-03-10")
	justified := fs.Bool("justified", false, "mark the absence justified")
	reason := fs.String("reason", "", "justification reason (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := c.authenticate(ctx, *user, *password)
	if err != nil {
		return err
	}
	defer c.services.Auth().Logout(session.Token)

	req := &services.AbsenceCreateRequest{
		StudentID: uint(*student),
		ModuleID:  uint(*module),
		Date:      *date,
		Justified: *justified,
	}
	if *reason != "" {
		req.Reason = reason
	}
	absence, err := c.services.Absences().Record(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("recorded absence %d\n", absence.ID)
	return nil
}

func (c *cli) alerts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alerts", flag.ExitOnError)
	threshold := fs.Int64("threshold", 0, "absence count threshold (default 5)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	alerts, err := c.services.Absences().Alerts(ctx, *threshold)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		fmt.Println("no students over the threshold")
		return nil
	}
	for _, a := range alerts {
		fmt.Printf("%s\t%s %s\t%d absence(s)\n", a.Matricule, a.LastName, a.FirstName, a.Count)
	}
	return nil
}

func (c *cli) importStudents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import-students", flag.ExitOnError)
	user, password := authFlags(fs)
	file := fs.String("file", "", "CSV file with nom, prenom and optional email columns")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := c.authenticate(ctx, *user, *password)
	if err != nil {
		return err
	}
	defer c.services.Auth().Logout(session.Token)

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	report, err := c.services.Students().ImportCSV(ctx, f)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d students, skipped %d rows\n", report.Imported, report.Skipped)
	return nil
}

func (c *cli) exportStudents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export-students", flag.ExitOnError)
	out := fs.String("out", "", "output CSV path (default EXPORT_DIR/etudiants.csv)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = filepath.Join(c.cfg.ExportDir, "etudiants.csv")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	if err := c.services.Students().ExportCSV(ctx, f); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

func (c *cli) seedModules(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed-modules", flag.ExitOnError)
	user, password := authFlags(fs)
	file := fs.String("file", "", "JSON file with the module catalogue")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := c.authenticate(ctx, *user, *password)
	if err != nil {
		return err
	}
	defer c.services.Auth().Logout(session.Token)

	payload, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("failed to read catalogue file: %w", err)
	}
	var entries []services.ModuleSeed
	if err := json.Unmarshal(payload, &entries); err != nil {
		return fmt.Errorf("failed to parse catalogue file: %w", err)
	}

	report, err := c.services.Modules().Seed(ctx, entries)
	if err != nil {
		return err
	}
	fmt.Printf("seeded %d modules, skipped %d entries\n", report.Imported, report.Skipped)
	return nil
}

func (c *cli) exportWorkbook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	kind := fs.String("kind", "students", "students, grades or absences")
	out := fs.String("out", "", "output XLSX path (default EXPORT_DIR/<kind>.xlsx)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = filepath.Join(c.cfg.ExportDir, *kind+".xlsx")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	exports := c.services.Exports()
	var err error
	switch strings.ToLower(*kind) {
	case "students":
		err = exports.ExportStudentsXLSX(ctx, path)
	case "grades":
		err = exports.ExportGradesXLSX(ctx, path)
	case "absences":
		err = exports.ExportAbsencesXLSX(ctx, path)
	default:
		return fmt.Errorf("unknown export kind %q", *kind)
	}
	if err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

func (c *cli) transcript(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transcript", flag.ExitOnError)
	studentID := fs.Uint("student", 0, "student id")
	out := fs.String("out", "", "output PDF path (default EXPORT_DIR/releve_<matricule>.pdf)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *studentID == 0 {
		return fmt.Errorf("-student is required")
	}

	data, err := c.services.Exports().Transcript(ctx, uint(*studentID))
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = filepath.Join(c.cfg.ExportDir, fmt.Sprintf("releve_%s.pdf", data.Student.Matricule))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := reports.WriteTranscript(data, path); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

func (c *cli) attestation(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("attestation", flag.ExitOnError)
	studentID := fs.Uint("student", 0, "student id")
	year := fs.String("year", "", "academic-year label, e.g. 2025-2026")
	out := fs.String("out", "", "output PDF path (default EXPORT_DIR/attestation_<matricule>.pdf)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *studentID == 0 {
		return fmt.Errorf("-student is required")
	}

	data, err := c.services.Exports().Attestation(ctx, uint(*studentID), *year)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = filepath.Join(c.cfg.ExportDir, fmt.Sprintf("attestation_%s.pdf", data.Matricule))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := reports.WriteAttestation(data, path); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

func (c *cli) stats(ctx context.Context) error {
	stats, err := c.services.Dashboard().Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("students:    %d\n", stats.Students)
	fmt.Printf("modules:     %d\n", stats.Modules)
	fmt.Printf("enrollments: %d\n", stats.Enrollments)
	fmt.Printf("absences:    %d\n", stats.Absences)
	if len(stats.TopAbsences) > 0 {
		fmt.Println("most absent:")
		for _, t := range stats.TopAbsences {
			fmt.Printf("  %s %s %s: %d\n", t.Matricule, t.LastName, t.FirstName, t.Count)
		}
	}
	return nil
}
