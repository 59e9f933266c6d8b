package app

import (
	"fmt"
	"sync"

	noteHTTP "github.com/gideon/notes/internal/note/http"
	noteRepository "github.com/gideon/notes/internal/note/repository"
	noteUseCase "github.com/gideon/notes/internal/note/usecase"
)

// noteComponents groups the lazily built note components.
type noteComponents struct {
	repo    noteUseCase.NoteRepository
	useCase noteUseCase.NoteUseCase
	handler *noteHTTP.NoteHandler

	repoInit    sync.Once
	useCaseInit sync.Once
	handlerInit sync.Once
}

// NoteRepository returns the note repository for the configured driver.
func (c *Container) NoteRepository() (noteUseCase.NoteRepository, error) {
	c.note.repoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["noteRepo"] = fmt.Errorf("failed to get database for note repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.note.repo = noteRepository.NewMySQLNoteRepository(db)
		case "postgres":
			c.note.repo = noteRepository.NewPostgreSQLNoteRepository(db)
		default:
			c.initErrors["noteRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["noteRepo"]; exists {
		return nil, storedErr
	}
	return c.note.repo, nil
}

// NoteUseCase returns the note use case.
func (c *Container) NoteUseCase() (noteUseCase.NoteUseCase, error) {
	c.note.useCaseInit.Do(func() {
		noteRepo, err := c.NoteRepository()
		if err != nil {
			c.initErrors["noteUseCase"] = fmt.Errorf("failed to get note repository for note use case: %w", err)
			return
		}

		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["noteUseCase"] = fmt.Errorf("failed to get tx manager for note use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["noteUseCase"] = fmt.Errorf("failed to get business metrics for note use case: %w", err)
			return
		}

		c.note.useCase = noteUseCase.NewNoteUseCase(noteRepo, txManager, businessMetrics)
	})
	if storedErr, exists := c.initErrors["noteUseCase"]; exists {
		return nil, storedErr
	}
	return c.note.useCase, nil
}

// NoteHandler returns the note HTTP handler.
func (c *Container) NoteHandler() (*noteHTTP.NoteHandler, error) {
	c.note.handlerInit.Do(func() {
		useCase, err := c.NoteUseCase()
		if err != nil {
			c.initErrors["noteHandler"] = fmt.Errorf("failed to get note use case for note handler: %w", err)
			return
		}
		c.note.handler = noteHTTP.NewNoteHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["noteHandler"]; exists {
		return nil, storedErr
	}
	return c.note.handler, nil
}
