package cli

import "github.com/alexanderramin/allot/internal/app"

func (a *App) calendarUseCase() app.CalendarUseCase {
	if a.CalendarLoader != nil {
		return a.CalendarLoader
	}
	return a.Calendar
}

func (a *App) importUseCase() app.ImportUseCase {
	if a.ImportData != nil {
		return a.ImportData
	}
	return a.Import
}
