package main

import (
	"net/http"
	"os"

	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/config"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/groups"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/handlers"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/metrics"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/notify"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/service"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/transport"
)

func main() {
	log.Namespace = "checkout.payments.ch.gov.uk"

	cfg, err := config.Get()
	if err != nil {
		log.Error(err, log.Data{"message": "error configuring service"})
		os.Exit(1)
	}

	groupSet, err := groups.Load(cfg.GroupsPath)
	if err != nil {
		log.Error(err, log.Data{"message": "error loading payment groups"})
		os.Exit(1)
	}

	router := mux.NewRouter()

	var publisher notify.Publisher = notify.NoopPublisher{}
	if cfg.KafkaEnabled() {
		kafkaPublisher, err := notify.NewKafkaPublisher(cfg)
		if err != nil {
			log.Error(err, log.Data{"message": "error creating kafka publisher"})
			os.Exit(1)
		}
		publisher = kafkaPublisher
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.EnableMetrics {
		registry := prometheus.NewRegistry()
		promRecorder, err := metrics.NewPrometheusRecorder(registry)
		if err != nil {
			log.Error(err, log.Data{"message": "error registering metrics"})
			os.Exit(1)
		}
		recorder = promRecorder
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")
	}

	svc := service.NewCheckoutService(cfg, transport.NewHTTPClient(cfg), groupSet, publisher, recorder)
	handlers.Register(router, svc)

	log.Info("Starting checkout.payments.ch.gov.uk service", log.Data{"bind_addr": cfg.BindAddr})
	err = http.ListenAndServe(cfg.BindAddr, router)

	if err != nil {
		log.Error(err)
	}
	log.Trace("Exiting checkout.payments.ch.gov.uk service")
}
