// Package synchronizer реализует Note Synchronizer: владеет упорядоченной коллекцией
// заметок текущего пользователя и применяет к ней только подтвержденные хранилищем изменения.
package synchronizer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"notesync/internal/notesync/domain/entities"
	"notesync/internal/notesync/ports/services"
	"notesync/pkg/logger"
)

const (
	LogMethodRefresh = "Refresh"
	LogMethodAdd     = "Add"
	LogMethodEdit    = "Edit"
	LogMethodRemove  = "Remove"

	LogStaleList        = "list response superseded, discarded"
	LogStaleReference   = "edited note is no longer in the collection"
	LogForeignOwner     = "response belongs to another identity, merged anyway"
	LogBlankAdd         = "blank note text ignored"
	LogIdentityChanged  = "identity changed, collection reset"
	LogIdentityCleared  = "identity cleared, collection reset"
	LogCollectionLoaded = "collection replaced"
	LogFollowAfterStop  = "session change after stop ignored"
	LogSupersededError  = "list failed while a newer list is pending"
)

// Synchronizer Note Synchronizer.
type Synchronizer struct {
	gateway  services.NoteGateway
	notifier services.Notifier

	mu     sync.RWMutex
	notes  []entities.Note
	status entities.SyncStatus
	owner  string
	// issued номер последнего запрошенного списка, applied номер последнего примененного.
	// Ответ со списком старше applied отбрасывается.
	issued  uint64
	applied uint64

	// lifecycleMu защищает unsubscribe и stopped и держится вокруг background.Add,
	// чтобы после Stop не запускались новые загрузки.
	lifecycleMu sync.Mutex
	unsubscribe func()
	stopped     bool
	background  sync.WaitGroup
}

// New создает синхронизатор с пустой коллекцией.
func New(gateway services.NoteGateway, notifier services.Notifier) *Synchronizer {
	return &Synchronizer{
		gateway:  gateway,
		notifier: notifier,
		notes:    []entities.Note{},
		status:   entities.SyncStatus{Kind: entities.SyncIdle},
	}
}

// Snapshot возвращает копию коллекции и статус.
func (s *Synchronizer) Snapshot() entities.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]entities.Note, len(s.notes))
	copy(notes, s.notes)
	return entities.Snapshot{Notes: notes, Status: s.status}
}

// Refresh заменяет коллекцию списком из хранилища. При ошибке коллекция остается прежней.
func (s *Synchronizer) Refresh(ctx context.Context, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRefresh), zap.String("owner_id", ownerID))

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.status = entities.SyncStatus{Kind: entities.SyncLoading}
	s.mu.Unlock()

	result := s.gateway.List(ctx, ownerID)

	s.mu.Lock()
	if seq < s.applied {
		s.mu.Unlock()
		log.Debug(ctx, LogStaleList, zap.Uint64("seq", seq))
		return nil
	}
	s.applied = seq

	if !result.IsOk() {
		if seq == s.issued {
			s.status = entities.SyncStatus{Kind: entities.SyncError, Message: result.Message()}
		} else {
			log.Debug(ctx, LogSupersededError, zap.Uint64("seq", seq), zap.Uint64("issued", s.issued))
		}
		s.mu.Unlock()
		s.surface(ctx, entities.NotificationRemote, result.Message())
		return entities.RemoteError(result.Message())
	}

	notes := make([]entities.Note, len(result.Value()))
	copy(notes, result.Value())
	s.notes = notes
	s.owner = ownerID
	if seq == s.issued {
		s.status = entities.SyncStatus{Kind: entities.SyncIdle}
	}
	s.mu.Unlock()

	log.Debug(ctx, LogCollectionLoaded, zap.Int("count", len(notes)))
	return nil
}

// Add создает заметку и добавляет ее в конец коллекции после подтверждения.
// Пустой текст игнорируется без обращения к хранилищу.
func (s *Synchronizer) Add(ctx context.Context, ownerID, text string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodAdd))

	if entities.IsBlank(text) {
		log.Debug(ctx, LogBlankAdd)
		return entities.ValidationError(entities.MsgEmptyNoteText)
	}

	result := s.gateway.Create(ctx, ownerID, text)
	if !result.IsOk() {
		s.surface(ctx, entities.NotificationRemote, result.Message())
		return entities.RemoteError(result.Message())
	}
	note := result.Value()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.warnForeign(ctx, log, note)
	for i := range s.notes {
		if s.notes[i].ID == note.ID {
			s.notes[i] = note
			return nil
		}
	}
	s.notes = append(s.notes, note)
	return nil
}

// Edit заменяет текст заметки на месте после подтверждения.
func (s *Synchronizer) Edit(ctx context.Context, noteID, text string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodEdit), zap.String("note_id", noteID))

	if entities.IsBlank(text) {
		s.surface(ctx, entities.NotificationValidation, entities.MsgEmptyNoteText)
		return entities.ValidationError(entities.MsgEmptyNoteText)
	}

	result := s.gateway.Update(ctx, noteID, text)
	if !result.IsOk() {
		s.surface(ctx, entities.NotificationRemote, result.Message())
		return entities.RemoteError(result.Message())
	}
	updated := result.Value()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.warnForeign(ctx, log, updated)
	for i := range s.notes {
		if s.notes[i].ID == noteID {
			s.notes[i].Text = updated.Text
			return nil
		}
	}
	log.Debug(ctx, LogStaleReference)
	return nil
}

// Remove удаляет заметку из коллекции после подтверждения хранилищем.
func (s *Synchronizer) Remove(ctx context.Context, noteID string) error {
	result := s.gateway.Delete(ctx, noteID)
	if !result.IsOk() {
		s.surface(ctx, entities.NotificationRemote, result.Message())
		return entities.RemoteError(result.Message())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.notes[:0:0]
	for _, n := range s.notes {
		if n.ID != noteID {
			kept = append(kept, n)
		}
	}
	s.notes = kept
	return nil
}

// Start следует за Session Store: при смене пользователя коллекция очищается
// и загружается заново, при выходе очищается.
func (s *Synchronizer) Start(ctx context.Context, session services.SessionSource) {
	unsubscribe := session.Subscribe(func(state entities.SessionState) {
		s.follow(ctx, state)
	})

	s.lifecycleMu.Lock()
	s.unsubscribe = unsubscribe
	s.stopped = false
	s.lifecycleMu.Unlock()

	s.follow(ctx, session.State())
}

// Stop отписывается от Session Store и дожидается фоновых загрузок.
// Уведомления о сессии, доставленные после Stop, игнорируются.
func (s *Synchronizer) Stop() {
	s.lifecycleMu.Lock()
	s.stopped = true
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.lifecycleMu.Unlock()

	s.background.Wait()
}

func (s *Synchronizer) follow(ctx context.Context, state entities.SessionState) {
	log := logger.Log(ctx)

	if s.isStopped() {
		log.Debug(ctx, LogFollowAfterStop, zap.Stringer("state", state.Kind))
		return
	}

	switch state.Kind {
	case entities.SessionAuthenticated:
		ownerID := state.OwnerID()

		s.mu.Lock()
		if s.owner == ownerID {
			s.mu.Unlock()
			return
		}
		s.reset(ownerID, entities.SyncLoading)
		s.mu.Unlock()

		log.Info(ctx, LogIdentityChanged, zap.String("owner_id", ownerID))

		s.lifecycleMu.Lock()
		if s.stopped {
			s.lifecycleMu.Unlock()
			return
		}
		s.background.Add(1)
		s.lifecycleMu.Unlock()

		go func() {
			defer s.background.Done()
			_ = s.Refresh(ctx, ownerID)
		}()

	case entities.SessionAnonymous:
		s.mu.Lock()
		if s.owner == "" && len(s.notes) == 0 {
			s.mu.Unlock()
			return
		}
		s.reset("", entities.SyncIdle)
		s.mu.Unlock()

		log.Info(ctx, LogIdentityCleared)
	}
}

func (s *Synchronizer) isStopped() bool {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	return s.stopped
}

// reset очищает коллекцию и отбрасывает списки, запрошенные для прежнего пользователя.
// Для нового пользователя статус Loading держится до первой загрузки. Вызывается под s.mu.
func (s *Synchronizer) reset(ownerID string, kind entities.SyncKind) {
	s.owner = ownerID
	s.notes = []entities.Note{}
	s.status = entities.SyncStatus{Kind: kind}
	s.issued++
	s.applied = s.issued
}

// warnForeign вызывается под s.mu.
func (s *Synchronizer) warnForeign(ctx context.Context, log *logger.Logger, note entities.Note) {
	if s.owner != "" && note.OwnerID != "" && note.OwnerID != s.owner {
		log.Warn(ctx, LogForeignOwner,
			zap.String("note_id", note.ID),
			zap.String("note_owner_id", note.OwnerID),
			zap.String("owner_id", s.owner))
	}
}

func (s *Synchronizer) surface(ctx context.Context, kind entities.NotificationKind, message string) {
	s.notifier.Notify(ctx, entities.Notification{Kind: kind, Message: message})
}
