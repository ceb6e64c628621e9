package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"sbfarm.id/api/handlers"
	"sbfarm.id/api/middleware"
)

// crudHandlers bundles the standard endpoints of one resource. extras hooks
// in resource-specific routes; they are registered before the {id} routes so
// literal paths like /summary never shadow-match an id.
type crudHandlers struct {
	list    http.HandlerFunc
	create  http.HandlerFunc
	summary http.HandlerFunc
	getOne  http.HandlerFunc
	update  http.HandlerFunc
	delete  http.HandlerFunc
	extras  func(sr *mux.Router)
}

func registerCRUDRoutes(parent *mux.Router, prefix, permission string, h crudHandlers) {
	sr := parent.PathPrefix("/" + prefix).Subrouter()
	sr.Use(middleware.RequirePermission(permission))

	sr.HandleFunc("", h.list).Methods(http.MethodGet)
	sr.HandleFunc("", h.create).Methods(http.MethodPost)
	if h.summary != nil {
		sr.HandleFunc("/summary", h.summary).Methods(http.MethodGet)
	}
	if h.extras != nil {
		h.extras(sr)
	}
	sr.HandleFunc("/{id:[0-9]+}", h.getOne).Methods(http.MethodGet)
	sr.HandleFunc("/{id:[0-9]+}", h.update).Methods(http.MethodPut)
	sr.HandleFunc("/{id:[0-9]+}", h.delete).Methods(http.MethodDelete)
}

// RegisterRoutes wires the full API surface onto the router.
func RegisterRoutes(r *mux.Router) {
	r.Use(middleware.RequestLogger)

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message":   "SB Farm API",
			"timestamp": time.Now().Format("2006-01-02 15:04:05"),
		})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", handlers.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", handlers.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.JWTMiddleware)
	protected.HandleFunc("/me", handlers.Me).Methods(http.MethodGet)
	protected.HandleFunc("/logout", handlers.Logout).Methods(http.MethodPost)

	registerCRUDRoutes(protected, "pencatatan-pupuk", "manage_fertilizers", crudHandlers{
		list:    handlers.PencatatanPupukResource.List,
		create:  handlers.PencatatanPupukResource.Create,
		summary: handlers.PencatatanPupukSummary,
		getOne:  handlers.PencatatanPupukResource.Get,
		update:  handlers.PencatatanPupukResource.Update,
		delete:  handlers.PencatatanPupukResource.Delete,
	})

	registerCRUDRoutes(protected, "penjualan-sayur", "manage_sales", crudHandlers{
		list:    handlers.PenjualanSayurResource.List,
		create:  handlers.PenjualanSayurResource.Create,
		summary: handlers.PenjualanSayurSummary,
		getOne:  handlers.PenjualanSayurResource.Get,
		update:  handlers.PenjualanSayurResource.Update,
		delete:  handlers.PenjualanSayurResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/export", handlers.ExportPenjualanSayur).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "belanja-modal", "manage_expenses", crudHandlers{
		list:    handlers.BelanjaModalResource.List,
		create:  handlers.BelanjaModalResource.Create,
		summary: handlers.BelanjaModalSummary,
		getOne:  handlers.BelanjaModalResource.Get,
		update:  handlers.BelanjaModalResource.Update,
		delete:  handlers.BelanjaModalResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/kategori", handlers.BelanjaModalKategori).Methods(http.MethodGet)
			sr.HandleFunc("/export", handlers.ExportBelanjaModal).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "nutrisi-pupuk", "manage_nutrition", crudHandlers{
		list:    handlers.NutrisiPupukResource.List,
		create:  handlers.NutrisiPupukResource.Create,
		summary: handlers.NutrisiPupukSummary,
		getOne:  handlers.NutrisiPupukResource.Get,
		update:  handlers.NutrisiPupukResource.Update,
		delete:  handlers.NutrisiPupukResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/areas", handlers.ActiveAreas).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "data-sayur", "manage_vegetables", crudHandlers{
		list:    handlers.DataSayurResource.List,
		create:  handlers.DataSayurResource.Create,
		summary: handlers.DataSayurSummary,
		getOne:  handlers.DataSayurResource.Get,
		update:  handlers.DataSayurResource.Update,
		delete:  handlers.DataSayurResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/areas", handlers.ActiveAreas).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "area-kebun", "manage_areas", crudHandlers{
		list:    handlers.AreaResource.List,
		create:  handlers.AreaResource.Create,
		summary: handlers.AreaSummary,
		getOne:  handlers.AreaResource.Get,
		update:  handlers.AreaResource.Update,
		delete:  handlers.AreaResource.Delete,
	})

	registerCRUDRoutes(protected, "jenis-pupuk", "manage_fertilizers", crudHandlers{
		list:    handlers.JenisPupukResource.List,
		create:  handlers.JenisPupukResource.Create,
		summary: handlers.JenisPupukSummary,
		getOne:  handlers.JenisPupukResource.Get,
		update:  handlers.JenisPupukResource.Update,
		delete:  handlers.JenisPupukResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/active", handlers.ActiveJenisPupuk).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "tandon", "manage_areas", crudHandlers{
		list:    handlers.TandonResource.List,
		create:  handlers.TandonResource.Create,
		summary: handlers.TandonSummary,
		getOne:  handlers.TandonResource.Get,
		update:  handlers.TandonResource.Update,
		delete:  handlers.TandonResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/area/{areaId:[0-9]+}", handlers.TandonByArea).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "nutrisi-pupuk-detail", "manage_nutrition", crudHandlers{
		list:    handlers.NutrisiPupukDetailResource.List,
		create:  handlers.NutrisiPupukDetailResource.Create,
		summary: handlers.NutrisiPupukDetailSummary,
		getOne:  handlers.NutrisiPupukDetailResource.Get,
		update:  handlers.NutrisiPupukDetailResource.Update,
		delete:  handlers.NutrisiPupukDetailResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/nutrisi-pupuk/{id:[0-9]+}", handlers.NutrisiPupukDetailByParent).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "seed-log", "manage_vegetables", crudHandlers{
		list:    handlers.SeedLogResource.List,
		create:  handlers.SeedLogResource.Create,
		summary: handlers.SeedLogSummary,
		getOne:  handlers.SeedLogResource.Get,
		update:  handlers.SeedLogResource.Update,
		delete:  handlers.SeedLogResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/by-data-sayur/{id:[0-9]+}", handlers.SeedLogByDataSayur).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "plant-health-log", "manage_vegetables", crudHandlers{
		list:    handlers.PlantHealthLogResource.List,
		create:  handlers.PlantHealthLogResource.Create,
		summary: handlers.PlantHealthLogSummary,
		getOne:  handlers.PlantHealthLogResource.Get,
		update:  handlers.PlantHealthLogResource.Update,
		delete:  handlers.PlantHealthLogResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/health-stats", handlers.PlantHealthStats).Methods(http.MethodGet)
			sr.HandleFunc("/by-data-sayur/{id:[0-9]+}", handlers.PlantHealthLogByDataSayur).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "perlakuan-master", "manage_vegetables", crudHandlers{
		list:    handlers.PerlakuanMasterResource.List,
		create:  handlers.PerlakuanMasterResource.Create,
		summary: handlers.PerlakuanMasterSummary,
		getOne:  handlers.PerlakuanMasterResource.Get,
		update:  handlers.PerlakuanMasterResource.Update,
		delete:  handlers.PerlakuanMasterResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/by-tipe/{tipe}", handlers.PerlakuanMasterByTipe).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "jadwal-perlakuan", "manage_vegetables", crudHandlers{
		list:    handlers.JadwalPerlakuanResource.List,
		create:  handlers.JadwalPerlakuanResource.Create,
		summary: handlers.JadwalPerlakuanSummary,
		getOne:  handlers.JadwalPerlakuanResource.Get,
		update:  handlers.JadwalPerlakuanResource.Update,
		delete:  handlers.JadwalPerlakuanResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/rotation-schedule", handlers.JadwalPerlakuanRotation).Methods(http.MethodGet)
			sr.HandleFunc("/by-month/{year:[0-9]+}/{month:[0-9]+}", handlers.JadwalPerlakuanByMonth).Methods(http.MethodGet)
			sr.HandleFunc("/by-area/{areaId:[0-9]+}", handlers.JadwalPerlakuanByArea).Methods(http.MethodGet)
			sr.HandleFunc("/by-perlakuan/{perlakuanId:[0-9]+}", handlers.JadwalPerlakuanByPerlakuan).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "pembelian-benih-detail", "manage_expenses", crudHandlers{
		list:    handlers.PembelianBenihDetailResource.List,
		create:  handlers.PembelianBenihDetailResource.Create,
		summary: handlers.PembelianBenihDetailSummary,
		getOne:  handlers.PembelianBenihDetailResource.Get,
		update:  handlers.PembelianBenihDetailResource.Update,
		delete:  handlers.PembelianBenihDetailResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/price-analysis", handlers.SeedPriceAnalysis).Methods(http.MethodGet)
			sr.HandleFunc("/belanja-modal/{id:[0-9]+}", handlers.PembelianBenihDetailByBelanjaModal).Methods(http.MethodGet)
		},
	})

	registerCRUDRoutes(protected, "penjualan-detail-batch", "manage_sales", crudHandlers{
		list:    handlers.PenjualanDetailBatchResource.List,
		create:  handlers.PenjualanDetailBatchResource.Create,
		summary: handlers.PenjualanDetailBatchSummary,
		getOne:  handlers.PenjualanDetailBatchResource.Get,
		update:  handlers.PenjualanDetailBatchResource.Update,
		delete:  handlers.PenjualanDetailBatchResource.Delete,
		extras: func(sr *mux.Router) {
			sr.HandleFunc("/batch-performance", handlers.BatchPerformance).Methods(http.MethodGet)
			sr.HandleFunc("/penjualan/{id:[0-9]+}", handlers.PenjualanDetailBatchByPenjualan).Methods(http.MethodGet)
			sr.HandleFunc("/data-sayur/{id:[0-9]+}", handlers.PenjualanDetailBatchByDataSayur).Methods(http.MethodGet)
		},
	})
}
