package controllers

import (
	"go.uber.org/zap"

	"github.com/rice-apps/rice-bikes-go/mailer"
	"github.com/rice-apps/rice-bikes-go/service"
)

var (
	svc    *service.Service
	mail   *mailer.Mailer
	logger *zap.Logger
)

// Setup wires the shared collaborators before routes are registered.
func Setup(s *service.Service, m *mailer.Mailer, l *zap.Logger) {
	svc = s
	mail = m
	logger = l
}
