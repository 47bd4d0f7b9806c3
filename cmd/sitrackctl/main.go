package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sitrack/internal/auth"
	"sitrack/internal/config"
	"sitrack/internal/database"
	"sitrack/internal/database/migration"
	"sitrack/internal/events"
	"sitrack/internal/logging"
	"sitrack/internal/model"
	"sitrack/internal/repository/postgres"
	"sitrack/internal/service"
)

// seedUser is one entry of a user seed file.
type seedUser struct {
	Name     string     `yaml:"name"`
	FullName string     `yaml:"full_name"`
	Role     model.Role `yaml:"role"`
	Password string     `yaml:"password"`
}

type seedFile struct {
	Users []seedUser `yaml:"users"`
}

var (
	// Used for flags.
	seedPath    string
	catalogPath string

	rootCmd = &cobra.Command{
		Use:           "sitrackctl",
		Short:         "Administrative tasks for the SiTrack API.",
		Long:          `sitrackctl applies database migrations, seeds user accounts and inspects the service catalog using the same environment configuration as the API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations.",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}

	seedUsersCmd = &cobra.Command{
		Use:   "seed-users",
		Short: "Create the user accounts listed in a YAML file.",
		Long:  `Creates every user in the seed file. Users whose name is already taken are skipped, so the command can be rerun safely.`,
		Args:  cobra.NoArgs,
		RunE:  runSeedUsers,
	}

	hashPasswordCmd = &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password.",
		Args:  cobra.ExactArgs(1),
		RunE:  runHashPassword,
	}

	catalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "Print the service catalog the API would load.",
		Args:  cobra.NoArgs,
		RunE:  runCatalog,
	}
)

func init() {
	seedUsersCmd.Flags().StringVar(&seedPath, "file", "users.yaml", "Path to the YAML user seed file.")
	catalogCmd.Flags().StringVar(&catalogPath, "file", "", "Catalog file; defaults to CATALOG_FILE, then the built-in catalog.")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedUsersCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error("command_failed", err, map[string]any{"args": os.Args[1:]})
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	log := logging.New(cmd.ErrOrStderr(), cfg.Location())

	db, err := database.Open(cmd.Context(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(cmd.Context(), db, log, cfg.Database.Host); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d migration steps applied or already present\n", len(migration.Steps()))
	return nil
}

func runSeedUsers(cmd *cobra.Command, _ []string) error {
	users, err := loadSeedUsers(seedPath)
	if err != nil {
		return err
	}

	cfg := config.Load()
	log := logging.New(cmd.ErrOrStderr(), cfg.Location())

	db, err := database.Open(cmd.Context(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewUserService(postgres.NewStore(db), cfg.Auth.EmailDomain, events.Noop{}, log)

	created, skipped, err := seedUsers(cmd.Context(), svc, users, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d created, %d skipped\n", created, skipped)
	return nil
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	path := catalogPath
	if path == "" {
		path = config.Load().CatalogFile
	}
	c, err := config.LoadCatalog(path)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(c)
}

// --- Helper Functions ---

func loadSeedUsers(path string) ([]seedUser, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file '%s': %w", path, err)
	}
	return parseSeedUsers(b)
}

func parseSeedUsers(b []byte) ([]seedUser, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("could not parse seed file: %w", err)
	}
	if len(f.Users) == 0 {
		return nil, errors.New("seed file lists no users")
	}
	for i, u := range f.Users {
		if strings.TrimSpace(u.Name) == "" {
			return nil, fmt.Errorf("user %d: name is required", i+1)
		}
		if !u.Role.Valid() {
			return nil, fmt.Errorf("user %s: unknown role %q", u.Name, u.Role)
		}
	}
	return f.Users, nil
}

// seedUsers creates users in order. A name that already exists is skipped;
// any other failure stops the run.
func seedUsers(ctx context.Context, svc service.UserService, users []seedUser, out io.Writer) (created, skipped int, err error) {
	for _, u := range users {
		p, err := svc.Create(ctx, service.UserInput{
			Name:     u.Name,
			FullName: u.FullName,
			Role:     u.Role,
			Password: u.Password,
		})
		switch {
		case errors.Is(err, service.ErrConflict):
			fmt.Fprintf(out, "skip   %s (exists)\n", u.Name)
			skipped++
		case err != nil:
			return created, skipped, fmt.Errorf("create %s: %w", u.Name, err)
		default:
			fmt.Fprintf(out, "create %s (%s) %s\n", p.Name, p.Role, p.Email)
			created++
		}
	}
	return created, skipped, nil
}
