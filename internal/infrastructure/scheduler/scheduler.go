// Package scheduler envuelve robfig/cron para el barrido nocturno de
// mantenimiento. El barrido también corre de forma síncrona antes de cada
// listado por día; el cron es un refuerzo funcionalmente equivalente.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler agrupa los trabajos cron de la aplicación.
type Scheduler struct {
	cron *cron.Cron
}

// New construye el scheduler en la zona horaria local.
func New(loc *time.Location) *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithLocation(loc))}
}

// ScheduleDaily registra un trabajo diario a la hora HH:MM indicada.
func (s *Scheduler) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

// Start arranca el cron en su propia goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop detiene el cron y espera a que terminen los trabajos en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("hora inválida %q, se espera HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("hora inválida en %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("minuto inválido en %q", timeStr)
	}
	// formato cron: minuto hora dom mes dow
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
