package formatter

import (
	"fmt"
	"strings"

	"github.com/sitecrew/gantt/internal/repair"
	"github.com/sitecrew/gantt/internal/schedule"
	"github.com/sitecrew/gantt/internal/service"
)

func kv(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s  %s\n", StyleDim.Render(fmt.Sprintf("%-11s", key)), value)
}

// FormatCopyResult summarizes a schedule copy.
func FormatCopyResult(res *service.CopyResult) string {
	var b strings.Builder
	kv(&b, "ANCHOR", HumanDate(res.Anchor))
	kv(&b, "SHIFT", Signed(res.ShiftDays)+" days")
	kv(&b, "COPIED", fmt.Sprintf("%d tasks", res.Copied))
	kv(&b, "REDERIVED", fmt.Sprintf("%d tasks", res.Rederived))
	kv(&b, "FINGERPRINT", Dim(shortFingerprint(res.Fingerprint)))
	writeMisses(&b, res.Unresolved)
	writeFailures(&b, res.FailedUpdates)
	return RenderBox("Schedule copied", strings.TrimRight(b.String(), "\n"))
}

// FormatShiftResult summarizes an in-place schedule shift.
func FormatShiftResult(res *service.ShiftResult) string {
	var b strings.Builder
	kv(&b, "ANCHOR", HumanDate(res.Anchor))
	kv(&b, "SHIFT", Signed(res.ShiftDays)+" days")
	kv(&b, "SHIFTED", fmt.Sprintf("%d tasks", res.Shifted))
	kv(&b, "REDERIVED", fmt.Sprintf("%d tasks", res.Rederived))
	kv(&b, "FINGERPRINT", Dim(shortFingerprint(res.Fingerprint)))
	writeMisses(&b, res.Unresolved)
	writeFailures(&b, res.FailedUpdates)
	return RenderBox("Schedule shifted", strings.TrimRight(b.String(), "\n"))
}

// FormatRepairPlan lists what a repair will do (or did).
func FormatRepairPlan(plan repair.Plan) string {
	if plan.Empty() && len(plan.SkippedOrphans) == 0 {
		return StyleGreen.Render("✔ Hierarchy numbers are clean")
	}

	var b strings.Builder
	if len(plan.Updates) > 0 {
		rows := make([][]string, 0, len(plan.Updates))
		for _, u := range plan.Updates {
			level := Dim("child")
			if u.TopLevel {
				level = StylePurple.Render("phase")
			}
			rows = append(rows, []string{u.Name, StyleRed.Render(u.OldKey), StyleGreen.Render(u.NewKey), level})
		}
		b.WriteString(RenderTable([]string{"TASK", "FROM", "TO", "LEVEL"}, rows))
	}
	for _, o := range plan.Orphans {
		fmt.Fprintf(&b, "%s %s %s\n", StyleRed.Render("✖ delete"), orphanName(o.Name), Dim("("+o.HierarchyNumber+")"))
	}
	for _, o := range plan.SkippedOrphans {
		fmt.Fprintf(&b, "%s %s %s\n", StyleYellow.Render("○ orphan"), orphanName(o.Name), Dim("("+o.HierarchyNumber+", use --delete-orphans)"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRepairResult summarizes an applied repair.
func FormatRepairResult(res *service.RepairResult) string {
	var b strings.Builder
	b.WriteString(FormatRepairPlan(res.Plan))
	b.WriteString("\n\n")
	kv(&b, "DELETED", fmt.Sprintf("%d", res.Deleted))
	kv(&b, "RENUMBERED", fmt.Sprintf("%d", res.Renumbered))
	writeFailures(&b, res.Failed)
	return RenderBox("Hierarchy repair", strings.TrimRight(b.String(), "\n"))
}

// FormatImportResult summarizes an import.
func FormatImportResult(res *service.ImportResult) string {
	return fmt.Sprintf("Imported %s with %d tasks %s",
		Bold(res.Project.Name+" ["+res.Project.ShortID+"]"), res.TaskCount, Dim(shortFingerprint(res.Fingerprint)))
}

func orphanName(name string) string {
	if strings.TrimSpace(name) == "" {
		return Dim("(unnamed)")
	}
	return fmt.Sprintf("%q", name)
}

func writeMisses(b *strings.Builder, misses []schedule.Miss) {
	if len(misses) == 0 {
		return
	}
	b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("%d unresolved predecessors (dates kept):", len(misses))) + "\n")
	for _, m := range misses {
		b.WriteString("  " + Dim(m.Error()) + "\n")
	}
}

func writeFailures(b *strings.Builder, failures []service.UpdateFailure) {
	if len(failures) == 0 {
		return
	}
	b.WriteString("\n" + StyleRed.Render(fmt.Sprintf("%d writes failed:", len(failures))) + "\n")
	for _, f := range failures {
		b.WriteString("  " + Dim(f.Error()) + "\n")
	}
}

func shortFingerprint(fp string) string {
	if len(fp) > 16 {
		return fp[:16]
	}
	return fp
}
