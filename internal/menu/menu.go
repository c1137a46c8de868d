// Package menu reads the data-type choice from the user.
package menu

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/couchcryptid/venus-data/internal/domain"
	"github.com/couchcryptid/venus-data/internal/ux"
)

// DefaultAttempts is how many answers an interactive user gets.
const DefaultAttempts = 3

// Fallback is chosen when no valid answer is given.
const Fallback = domain.Temperature

const promptText = "Choose the number of the data type to analyze:"

// Menu prompts for a data type on in and echoes to a printer.
type Menu struct {
	in       *bufio.Reader
	out      *ux.Printer
	catalog  *domain.Catalog
	attempts int
	logger   *slog.Logger
}

// New creates a Menu. A non-interactive menu reads a single line.
func New(in io.Reader, out *ux.Printer, catalog *domain.Catalog, interactive bool, logger *slog.Logger) *Menu {
	attempts := 1
	if interactive {
		attempts = DefaultAttempts
	}
	return &Menu{
		in:       bufio.NewReader(in),
		out:      out,
		catalog:  catalog,
		attempts: attempts,
		logger:   logger,
	}
}

// Choose lists the types and returns the user's pick. Invalid answers are
// re-prompted; once attempts run out, or input ends, it falls back to
// temperature with a warning. The second return reports the fallback.
func (m *Menu) Choose() (domain.DataType, bool) {
	m.out.Menu(m.catalog)

	for attempt := 1; ; attempt++ {
		m.out.Prompt(promptText)
		line, readErr := m.in.ReadString('\n')
		t, err := domain.ParseSelection(line)
		if err == nil {
			return t, false
		}
		m.logger.Debug("invalid menu selection", "input", strings.TrimSpace(line), "attempt", attempt)

		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				m.logger.Warn("read menu input failed", "error", readErr)
			}
			break
		}
		if attempt >= m.attempts {
			break
		}
		m.out.Warning("Invalid choice. Enter a number between 1 and 9.")
	}

	m.out.Warning("Invalid choice. Selecting temperature by default.")
	return Fallback, true
}
