package cmd

import (
	"fmt"

	"github.com/leffw/torch-cli/internal/docker"
	"github.com/leffw/torch-cli/internal/registry"
	"github.com/leffw/torch-cli/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the fleet document and environment",
	Long: `Check that docker is available and that the fleet document loads as a
compose project with the backend present, resolvable dependencies and no
host port bound twice.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println(ui.Bold("Validating " + cfg.ComposePath() + "..."))

	passed := 0
	failed := 0

	if path, err := docker.New(cfg.Docker, cfg.ComposePath()).Check(); err != nil {
		ui.ValidationErr("docker", err.Error(), "install docker or set 'docker' in torch.yml")
		failed++
	} else {
		ui.ValidationOK("docker", path)
		passed++
	}

	errs, err := registry.Validate(cmd.Context(), cfg.ComposePath(), cfg.Backend.Name)
	if err != nil {
		ui.ValidationErr("fleet document", err.Error(), "run 'torch init' to create one")
		failed++
	} else if len(errs) == 0 {
		ui.ValidationOK("fleet document", "configuration valid")
		passed++
	} else {
		for _, ve := range errs {
			ui.ValidationErr(ve.Field, ve.Message, ve.Suggestion)
			failed++
		}
	}

	fmt.Println()
	if failed == 0 {
		ui.Success(fmt.Sprintf("%d checks passed, 0 errors", passed))
	} else {
		fmt.Printf("%d checks passed, %d errors\n", passed, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d validation errors", failed)
	}
	return nil
}
