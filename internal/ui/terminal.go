package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/phase"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/plant"
	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/tasksync"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	doneStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	busyStyle   = lipgloss.NewStyle().Faint(true)
	capStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	awardStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	hintStyle   = lipgloss.NewStyle().Italic(true).Faint(true)
	listStyle   = lipgloss.NewStyle().PaddingLeft(2)
)

// Terminal draws the daily-tasks page into a writer. It stands in for
// the site's browser view: it only paints what the engine hands it.
type Terminal struct {
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Render(vm tasksync.ViewModel) {
	switch vm.State {
	case tasksync.StateLoading:
		fmt.Fprintln(t.out, busyStyle.Render("Loading today's tasks..."))
		return
	case tasksync.StateLoadFailed:
		fmt.Fprintln(t.out, errorStyle.Render(vm.ErrorMessage))
		return
	case tasksync.StateUnauthenticated:
		return // RedirectToLogin already said everything
	}

	header := fmt.Sprintf("🫘 %d beans   🌙 %d moons", vm.Wallet.Beans, vm.Wallet.Moons)
	if vm.Username != "" {
		header = vm.Username + "   " + header
	}
	fmt.Fprintln(t.out, headerStyle.Render(header))
	fmt.Fprintln(t.out, capStyle.Render(fmt.Sprintf("daily cap: %d beans", vm.MaxDailyBeans)))

	for _, task := range vm.Tasks {
		line := fmt.Sprintf("[%s] %s (+%d beans)  #%s", checkbox(task), task.Title, task.Beans, task.ID)
		switch {
		case task.Busy:
			line = busyStyle.Render(line)
		case task.Done:
			line = doneStyle.Render(line)
		}
		fmt.Fprintln(t.out, listStyle.Render(line))
	}

	switch {
	case vm.BonusEnabled:
		fmt.Fprintln(t.out, hintStyle.Render(fmt.Sprintf("All tasks done! Claim your +%d moon bonus.", vm.BonusMoons)))
	case vm.State == tasksync.StateClaimingBonus:
		fmt.Fprintln(t.out, busyStyle.Render("Claiming bonus..."))
	}
}

func checkbox(task tasksync.TaskView) string {
	if task.Busy {
		return "~"
	}
	if task.Done {
		return "x"
	}
	return " "
}

func (t *Terminal) ShowAward(c tasksync.Currency, amount int) {
	switch c {
	case tasksync.CurrencyMoons:
		fmt.Fprintln(t.out, awardStyle.Render(fmt.Sprintf("🌙 +%d moons, daily bonus claimed!", amount)))
	default:
		fmt.Fprintln(t.out, awardStyle.Render(fmt.Sprintf("🫘 +%d beans earned!", amount)))
	}
}

func (t *Terminal) RedirectToLogin(next string) {
	fmt.Fprintln(t.out, errorStyle.Render("Session expired. Sign in at "+next+" to continue."))
}

// RenderBuckets draws the plant recommendation lists for a phase,
// keeping the page's empty-list placeholders.
func (t *Terminal) RenderBuckets(phaseLabel string, b plant.Buckets) {
	fmt.Fprintln(t.out, headerStyle.Render(fmt.Sprintf("%s %s", phase.Emoji(phaseLabel), phase.DisplayName(phaseLabel))))

	section := func(title string, names []string, empty string) {
		fmt.Fprintln(t.out, headerStyle.Render(title))
		if len(names) == 0 {
			fmt.Fprintln(t.out, listStyle.Render(hintStyle.Render(empty)))
			return
		}
		for _, name := range names {
			fmt.Fprintln(t.out, listStyle.Render("• "+name))
		}
	}
	section("Grow", b.Grow, "No suitable plants to grow.")
	section("Harvest", b.Harvest, "No plants to harvest.")
	section("Rest", b.Rest, "No plants resting on this phase.")
}
