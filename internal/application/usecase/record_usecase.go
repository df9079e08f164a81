package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/merchbydz/backoffice/internal/application/ports"
	"github.com/merchbydz/backoffice/internal/domain"
	"github.com/merchbydz/backoffice/internal/domain/entity"
	"github.com/merchbydz/backoffice/internal/domain/repository"
)

// Patch cambios de campos sobre un registro (los *Input de dto).
type Patch[T any] interface {
	Apply(rec T) error
}

type touchable interface {
	Touch(now time.Time)
}

// RecordUseCase ciclo de vida común de las colecciones: alta con valores por defecto,
// edición campo a campo, consulta por rango y borrado definitivo.
// Toda escritura invalida la caché del dashboard.
type RecordUseCase[E any, T interface {
	*E
	entity.Record
}] struct {
	name    string
	repo    repository.RecordRepository[T]
	blank   func(now time.Time) T
	prepare func(rec T)
	cache   ports.SummaryCache
	log     zerolog.Logger
	now     func() time.Time
}

// NewRecordUseCase construye el caso de uso para la colección name.
func NewRecordUseCase[E any, T interface {
	*E
	entity.Record
}](name string, repo repository.RecordRepository[T], blank func(now time.Time) T, cache ports.SummaryCache, log zerolog.Logger) *RecordUseCase[E, T] {
	return &RecordUseCase[E, T]{
		name:  name,
		repo:  repo,
		blank: blank,
		cache: cache,
		log:   log.With().Str("collection", name).Logger(),
		now:   time.Now,
	}
}

// WithPrepare registra un ajuste que se aplica antes de validar cada escritura.
func (uc *RecordUseCase[E, T]) WithPrepare(fn func(rec T)) *RecordUseCase[E, T] {
	uc.prepare = fn
	return uc
}

// Name nombre de la colección (orders, charges...).
func (uc *RecordUseCase[E, T]) Name() string { return uc.name }

// Blank registro nuevo con los valores por defecto del alta.
func (uc *RecordUseCase[E, T]) Blank() T { return uc.blank(uc.now()) }

// Add crea un registro con valores por defecto, le aplica patch (si no es nil) y lo persiste.
func (uc *RecordUseCase[E, T]) Add(ctx context.Context, patch Patch[T]) (T, error) {
	rec := uc.Blank()
	if patch != nil {
		if err := patch.Apply(rec); err != nil {
			return nil, err
		}
	}
	rec.SetID(uuid.NewString())
	if err := uc.persist(ctx, rec); err != nil {
		return nil, err
	}
	uc.log.Info().Str("id", rec.GetID()).Msg("registro creado")
	return rec, nil
}

// Get devuelve domain.ErrNotFound si no existe.
func (uc *RecordUseCase[E, T]) Get(ctx context.Context, id string) (T, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.log.Error().Err(err).Str("id", id).Msg("leer registro")
		return nil, fmt.Errorf("%s: %w", uc.name, err)
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// List registros del filtro.
func (uc *RecordUseCase[E, T]) List(ctx context.Context, filter repository.RecordFilter) ([]T, error) {
	recs, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.log.Error().Err(err).Str("range", filter.Range.Key()).Msg("listar registros")
		return nil, fmt.Errorf("%s: %w", uc.name, err)
	}
	return recs, nil
}

// Save edita el registro id aplicando patch; si no existe lo crea con ese id (upsert).
// created indica si hubo alta.
func (uc *RecordUseCase[E, T]) Save(ctx context.Context, id string, patch Patch[T]) (rec T, created bool, err error) {
	if id == "" {
		return nil, false, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	rec, err = uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.log.Error().Err(err).Str("id", id).Msg("leer registro")
		return nil, false, fmt.Errorf("%s: %w", uc.name, err)
	}
	if rec == nil {
		rec = uc.Blank()
		rec.SetID(id)
		created = true
	}
	if patch != nil {
		if err := patch.Apply(rec); err != nil {
			return nil, false, err
		}
	}
	if err := uc.persist(ctx, rec); err != nil {
		return nil, false, err
	}
	return rec, created, nil
}

// Update persiste un registro ya modificado en memoria (p. ej. cambio de estado).
func (uc *RecordUseCase[E, T]) Update(ctx context.Context, rec T) error {
	return uc.persist(ctx, rec)
}

// Delete borra sin posibilidad de deshacer.
func (uc *RecordUseCase[E, T]) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Error().Err(err).Str("id", id).Msg("borrar registro")
		}
		return fmt.Errorf("%s: %w", uc.name, err)
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("id", id).Msg("registro borrado")
	return nil
}

// Build arma un registro de alta sin persistirlo (importación por lotes):
// valores por defecto, patch, ajustes y validación. id vacío genera uno nuevo.
func (uc *RecordUseCase[E, T]) Build(patch Patch[T], id string) (T, error) {
	rec := uc.Blank()
	if patch != nil {
		if err := patch.Apply(rec); err != nil {
			return nil, err
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	rec.SetID(id)
	if err := uc.ready(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Invalidate descarta la caché del dashboard tras escrituras hechas fuera del caso de uso.
func (uc *RecordUseCase[E, T]) Invalidate(ctx context.Context) { uc.invalidate(ctx) }

func (uc *RecordUseCase[E, T]) ready(rec T) error {
	if uc.prepare != nil {
		uc.prepare(rec)
	}
	if t, ok := any(rec).(touchable); ok {
		t.Touch(uc.now())
	}
	return rec.Validate()
}

func (uc *RecordUseCase[E, T]) persist(ctx context.Context, rec T) error {
	if err := uc.ready(rec); err != nil {
		return err
	}
	if err := uc.repo.Upsert(ctx, rec); err != nil {
		uc.log.Error().Err(err).Str("id", rec.GetID()).Msg("guardar registro")
		return fmt.Errorf("%s: %w", uc.name, err)
	}
	uc.invalidate(ctx)
	return nil
}

// invalidate no corta la escritura: una caché caída solo degrada el dashboard.
func (uc *RecordUseCase[E, T]) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché del dashboard")
	}
}
