package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/floodwatch/flood_incident_map/internal/models"
	"github.com/floodwatch/flood_incident_map/internal/observability"
	"github.com/floodwatch/flood_incident_map/internal/service"
	"github.com/floodwatch/flood_incident_map/internal/service/mocks"
	"github.com/floodwatch/flood_incident_map/internal/store"
	"github.com/floodwatch/flood_incident_map/internal/webhook"
	webhookmocks "github.com/floodwatch/flood_incident_map/internal/webhook/mocks"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func activeRecord() models.IncidentRecord {
	return models.IncidentRecord{
		ID:               uuid.New(),
		ShapeKind:        models.ShapeCircle,
		Position:         models.Position{Lat: 6.05, Lng: 80.22},
		RadiusMeters:     250,
		CreatedAtMillis:  1779006600000,
		IncidentName:     "Gin Ganga overflow",
		ReporterName:     "D. Perera",
		SeverityLevel:    models.SeveritySevere,
		EvacuationStatus: models.EvacuationRecommended,
	}
}

func TestIncidentService_CreateIncident(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIncidentStore(ctrl)
	pub := webhookmocks.NewMockAlertPublisher(ctrl)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 17, 9, 0, 0, 0, time.UTC))
	svc := service.NewIncidentService(st, pub, testLogger(), observability.NewMetricsForTesting(), clock)

	record := activeRecord()
	draft := store.Draft{IncidentName: record.IncidentName}

	st.EXPECT().Add(gomock.Any(), draft).Return(record, nil)
	st.EXPECT().All(gomock.Any()).Return([]models.IncidentRecord{record})
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event webhook.AlertEvent) error {
			assert.Equal(t, record.ID, event.IncidentID)
			assert.Equal(t, "created", event.Action)
			assert.Equal(t, clock.Now().UTC(), event.Timestamp)
			return nil
		})

	got, err := svc.CreateIncident(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestIncidentService_CreateIncident_InactiveSkipsAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIncidentStore(ctrl)
	pub := webhookmocks.NewMockAlertPublisher(ctrl)
	svc := service.NewIncidentService(st, pub, testLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	record := activeRecord()
	record.EvacuationStatus = models.EvacuationCompleted

	st.EXPECT().Add(gomock.Any(), gomock.Any()).Return(record, nil)
	st.EXPECT().All(gomock.Any()).Return([]models.IncidentRecord{record})

	_, err := svc.CreateIncident(context.Background(), store.Draft{})
	require.NoError(t, err)
}

func TestIncidentService_CreateIncident_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIncidentStore(ctrl)
	svc := service.NewIncidentService(st, nil, testLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	valErr := &store.ValidationError{Fields: []string{"incidentName"}}
	st.EXPECT().Add(gomock.Any(), gomock.Any()).Return(models.IncidentRecord{}, valErr)

	_, err := svc.CreateIncident(context.Background(), store.Draft{})
	require.Error(t, err)

	var got *store.ValidationError
	assert.ErrorAs(t, err, &got)
}

func TestIncidentService_CreateIncident_FlushErrorKeepsRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIncidentStore(ctrl)
	pub := webhookmocks.NewMockAlertPublisher(ctrl)
	svc := service.NewIncidentService(st, pub, testLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	record := activeRecord()
	flushErr := &store.FlushError{Err: errors.New("disk full")}

	st.EXPECT().Add(gomock.Any(), gomock.Any()).Return(record, flushErr)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.CreateIncident(context.Background(), store.Draft{})
	require.Error(t, err)

	var asFlush *store.FlushError
	require.ErrorAs(t, err, &asFlush)
	assert.Equal(t, record, got)
}

func TestIncidentService_CreateIncident_PublishFailureDoesNotFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIncidentStore(ctrl)
	pub := webhookmocks.NewMockAlertPublisher(ctrl)
	svc := service.NewIncidentService(st, pub, testLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	record := activeRecord()
	st.EXPECT().Add(gomock.Any(), gomock.Any()).Return(record, nil)
	st.EXPECT().All(gomock.Any()).Return([]models.IncidentRecord{record})
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("queue down"))

	_, err := svc.CreateIncident(context.Background(), store.Draft{})
	assert.NoError(t, err)
}

func TestIncidentService_UpdateIncident_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIncidentStore(ctrl)
	svc := service.NewIncidentService(st, nil, testLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	id := uuid.New()
	st.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(models.IncidentRecord{}, store.ErrNotFound)

	_, err := svc.UpdateIncident(context.Background(), id, store.Patch{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestIncidentService_UpdateIncident_PublishesAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIncidentStore(ctrl)
	pub := webhookmocks.NewMockAlertPublisher(ctrl)
	svc := service.NewIncidentService(st, pub, testLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	record := activeRecord()
	record.EvacuationStatus = models.EvacuationInProgress

	st.EXPECT().Update(gomock.Any(), record.ID, gomock.Any()).Return(record, nil)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event webhook.AlertEvent) error {
			assert.Equal(t, "updated", event.Action)
			return nil
		})

	got, err := svc.UpdateIncident(context.Background(), record.ID, store.Patch{})
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestIncidentService_DeleteIncident(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIncidentStore(ctrl)
	svc := service.NewIncidentService(st, nil, testLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	id := uuid.New()
	st.EXPECT().Remove(gomock.Any(), id).Return(nil)
	st.EXPECT().All(gomock.Any()).Return(nil)

	assert.NoError(t, svc.DeleteIncident(context.Background(), id))
}

func TestIncidentService_DeleteIncident_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIncidentStore(ctrl)
	svc := service.NewIncidentService(st, nil, testLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	id := uuid.New()
	st.EXPECT().Remove(gomock.Any(), id).Return(store.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteIncident(context.Background(), id), store.ErrNotFound)
}

func TestIncidentService_ListIncidents(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockIncidentStore(ctrl)
	svc := service.NewIncidentService(st, nil, testLogger(), observability.NewMetricsForTesting(), clockwork.NewFakeClock())

	records := []models.IncidentRecord{activeRecord(), activeRecord()}
	st.EXPECT().All(gomock.Any()).Return(records)

	assert.Equal(t, records, svc.ListIncidents(context.Background()))
}
