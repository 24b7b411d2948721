package game

import "log/slog"

// Unload logs the run summary and releases output files and GPU resources.
// Safe on a partially constructed game.
func (g *Game) Unload() {
	if g.selection != nil {
		g.logSummary()
	}
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.outputManager = nil
	}
	if g.hitTarget != nil {
		g.hitTarget.Unload()
		g.hitTarget = nil
	}
	if g.character != nil {
		g.character.Unload()
		g.character = nil
	}
}
