package stilts

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// executableMode is rwx for owner, group and other.
const executableMode os.FileMode = 0o777

// Persist writes cmd to cmd.Path, replacing any existing file, and marks it executable.
func Persist(cmd GeneratedCommand) error {
	if err := writeExecutable(cmd.Path, cmd.Text); err != nil {
		return err
	}
	log.Info().Str("path", cmd.Path).Int("bytes", len(cmd.Text)).Msg("command written")
	return nil
}

func writeExecutable(path, content string) error {
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		log.Debug().Str("path", path).Msg("overwriting existing file")
	}
	if err := os.WriteFile(path, []byte(content), executableMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile honours the umask and leaves existing modes untouched
	if err := os.Chmod(path, executableMode); err != nil {
		return fmt.Errorf("failed to make %s executable: %w", path, err)
	}
	return nil
}
