package deskscene

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Exit stops the loop after the current frame.
func (cmd *Commands) Exit() *Commands {
	cmd.app.requestExit()
	return cmd
}

// Fail records err (the first one wins) and stops the app. During install it
// also prevents the remaining modules from installing.
func (cmd *Commands) Fail(err error) *Commands {
	cmd.app.fail(err)
	return cmd
}

// OnShutdown registers fn to run when Run returns. Hooks run last-in first-out.
func (cmd *Commands) OnShutdown(fn func()) *Commands {
	cmd.app.shutdown = append(cmd.app.shutdown, fn)
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
