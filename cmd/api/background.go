package main

import "fmt"

// background runs fn on its own goroutine. Panics are logged, and run waits
// for outstanding jobs before the process exits.
func (app *application) background(fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background job panicked", "error", fmt.Sprint(err))
			}
		}()

		fn()
	}()
}
