package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"sbfarm.id/api/config"
	"sbfarm.id/api/middleware"
	"sbfarm.id/api/models"
)

// resource implements list/get/create/update/delete for one record type. The
// hook fields cover everything entity-specific; every mutation runs in a
// transaction together with its audit row.
type resource[M models.Entity, P any] struct {
	table string // table name recorded in the audit trail
	label string // Indonesian label used in messages and audit details

	preloads    []string // associations loaded on list responses
	getPreloads []string // associations loaded on single-record responses; falls back to preloads
	defaultSort string

	// filter applies query-string filters to a listing query.
	filter func(q *gorm.DB, r *http.Request) *gorm.DB
	// check runs pre-write validation that needs the database (uniqueness,
	// foreign keys). id is zero on create.
	check func(tx *gorm.DB, p *P, id uint) error
	// assign copies payload fields onto the model.
	assign func(m *M, p *P)
	// setUser stamps the recording user on create; nil for models without one.
	setUser func(m *M, uid uint)
	// afterSave manages dependent rows inside the same transaction.
	afterSave func(tx *gorm.DB, m *M, p *P, created bool) error
	// inUse returns a refusal message when the record still has dependents.
	inUse func(tx *gorm.DB, m *M) (string, error)
	// afterDelete cleans up or re-syncs related state inside the transaction.
	afterDelete func(tx *gorm.DB, m *M) error
	// describe renders the one-line audit summary for a record.
	describe func(m *M) string
}

func (c *resource[M, P]) id(m *M) uint { return (*m).PrimaryID() }

func (c *resource[M, P]) query() *gorm.DB {
	return config.DB.Model(new(M))
}

func (c *resource[M, P]) find(db *gorm.DB, id uint, preloads []string) (*M, error) {
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	m := new(M)
	if err := q.First(m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func pathID(r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (c *resource[M, P]) notFound(w http.ResponseWriter) {
	respondError(w, http.StatusNotFound, fmt.Sprintf("Data %s tidak ditemukan", c.label))
}

func (c *resource[M, P]) fail(w http.ResponseWriter, verb string, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		respondRequestError(w, reqErr)
		return
	}
	log.Error().Err(err).Str("table", c.table).Msg(verb + " failed")
	respondFailure(w, fmt.Sprintf("Gagal %s %s", verb, c.label), err)
}

// List answers a filtered, paginated collection.
func (c *resource[M, P]) List(w http.ResponseWriter, r *http.Request) {
	base := c.query()
	if c.filter != nil {
		base = c.filter(base, r)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		c.fail(w, "memuat", err)
		return
	}

	params := models.ParseListParams(r)
	q := base.Session(&gorm.Session{}).
		Order(c.defaultSort).
		Offset(params.Offset()).
		Limit(params.PerPage)
	for _, p := range c.preloads {
		q = q.Preload(p)
	}

	var items []M
	if err := q.Find(&items).Error; err != nil {
		c.fail(w, "memuat", err)
		return
	}
	if items == nil {
		items = []M{}
	}
	respondData(w, http.StatusOK, models.Page{
		Items:   items,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
	})
}

// Get answers a single record by path id.
func (c *resource[M, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.notFound(w)
		return
	}
	preloads := c.getPreloads
	if preloads == nil {
		preloads = c.preloads
	}
	m, err := c.find(config.DB, id, preloads)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.notFound(w)
		} else {
			c.fail(w, "memuat", err)
		}
		return
	}
	respondData(w, http.StatusOK, m)
}

// Create validates the payload and persists the record with its audit row.
func (c *resource[M, P]) Create(w http.ResponseWriter, r *http.Request) {
	var p P
	if !decodeBody(w, r, &p) {
		return
	}
	if errs := validateStruct(&p); errs != nil {
		respondValidation(w, errs)
		return
	}

	m := new(M)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if c.check != nil {
			if err := c.check(tx, &p, 0); err != nil {
				return err
			}
		}
		c.assign(m, &p)
		if c.setUser != nil {
			c.setUser(m, middleware.GetUserID(r))
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if c.afterSave != nil {
			if err := c.afterSave(tx, m, &p, true); err != nil {
				return err
			}
		}
		details := fmt.Sprintf("Created %s: %s", c.label, c.describe(m))
		return logActivity(tx, r, "create", c.table, c.id(m), details, nil)
	})
	if err != nil {
		c.fail(w, "menyimpan", err)
		return
	}

	saved, err := c.find(config.DB, c.id(m), c.loadSet())
	if err != nil {
		saved = m
	}
	respondMessage(w, http.StatusCreated, fmt.Sprintf("Data %s berhasil disimpan", c.label), saved)
}

// Update validates the payload, rewrites the record and snapshots the change.
func (c *resource[M, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.notFound(w)
		return
	}
	var p P
	if !decodeBody(w, r, &p) {
		return
	}
	if errs := validateStruct(&p); errs != nil {
		respondValidation(w, errs)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		m, err := c.find(tx, id, nil)
		if err != nil {
			return err
		}
		old := *m
		if c.check != nil {
			if err := c.check(tx, &p, id); err != nil {
				return err
			}
		}
		c.assign(m, &p)
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if c.afterSave != nil {
			if err := c.afterSave(tx, m, &p, false); err != nil {
				return err
			}
		}
		details := fmt.Sprintf("Updated %s: %s", c.label, c.describe(m))
		return logActivity(tx, r, "update", c.table, id, details, changeSet{Old: old, New: *m})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.notFound(w)
		} else {
			c.fail(w, "mengupdate", err)
		}
		return
	}

	saved, err := c.find(config.DB, id, c.loadSet())
	if err != nil {
		c.fail(w, "memuat", err)
		return
	}
	respondMessage(w, http.StatusOK, fmt.Sprintf("Data %s berhasil diupdate", c.label), saved)
}

// Delete removes a record once its dependents are cleared.
func (c *resource[M, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		c.notFound(w)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		m, err := c.find(tx, id, nil)
		if err != nil {
			return err
		}
		if c.inUse != nil {
			msg, err := c.inUse(tx, m)
			if err != nil {
				return err
			}
			if msg != "" {
				return errConflict(msg)
			}
		}
		details := fmt.Sprintf("Deleted %s: %s", c.label, c.describe(m))
		if err := tx.Delete(m).Error; err != nil {
			return err
		}
		if c.afterDelete != nil {
			if err := c.afterDelete(tx, m); err != nil {
				return err
			}
		}
		return logActivity(tx, r, "delete", c.table, id, details, nil)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.notFound(w)
		} else {
			c.fail(w, "menghapus", err)
		}
		return
	}
	respondMessage(w, http.StatusOK, fmt.Sprintf("Data %s berhasil dihapus", c.label), nil)
}

func (c *resource[M, P]) loadSet() []string {
	if c.getPreloads != nil {
		return c.getPreloads
	}
	return c.preloads
}
