package models

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Request модели

// TemplateEntry элемент недельного шаблона
type TemplateEntry struct {
	DayOfWeek     int              `json:"dayOfWeek"` // 0 = воскресенье
	StartTime     types.TimeString `json:"startTime"` // "18:00"
	EndTime       types.TimeString `json:"endTime"`
	Price         float64          `json:"price"`
	DepositAmount float64          `json:"depositAmount"`
}

// CreateFieldRequest запрос на создание поля.
// Если передан шаблон, слоты генерируются сразу на WindowDays дней.
type CreateFieldRequest struct {
	CityID      int64           `json:"cityId"`
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Template    []TemplateEntry `json:"template,omitempty"`
	WindowDays  *int            `json:"windowDays,omitempty"`
}

// ToDomainField конвертирует request в domain модель
func (r *CreateFieldRequest) ToDomainField(ownerID string) *domain.Field {
	return &domain.Field{
		OwnerID:     ownerID,
		CityID:      r.CityID,
		Name:        r.Name,
		Location:    r.Location,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

// ToDomainTemplate конвертирует шаблон; nil, если шаблон не передан
func (r *CreateFieldRequest) ToDomainTemplate() domain.WeeklyTemplate {
	return ToDomainTemplate(r.Template)
}

// ToDomainTemplate конвертирует элементы шаблона в domain модель
func ToDomainTemplate(entries []TemplateEntry) domain.WeeklyTemplate {
	if len(entries) == 0 {
		return nil
	}
	template := make(domain.WeeklyTemplate, 0, len(entries))
	for _, e := range entries {
		template = append(template, domain.TemplateEntry{
			DayOfWeek:     e.DayOfWeek,
			StartTime:     e.StartTime,
			EndTime:       e.EndTime,
			Price:         e.Price,
			DepositAmount: e.DepositAmount,
		})
	}
	return template
}

// UpdateFieldRequest частичное обновление поля; nil = не менять
type UpdateFieldRequest struct {
	CityID      *int64  `json:"cityId,omitempty"`
	Name        *string `json:"name,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// IsEmpty возвращает true, если ничего не передано
func (r *UpdateFieldRequest) IsEmpty() bool {
	return r.CityID == nil && r.Name == nil && r.Location == nil && r.Description == nil && r.ImageURL == nil
}

// ApplyTo применяет изменения к копии поля
func (r *UpdateFieldRequest) ApplyTo(f domain.Field) *domain.Field {
	if r.CityID != nil {
		f.CityID = *r.CityID
	}
	if r.Name != nil {
		f.Name = *r.Name
	}
	if r.Location != nil {
		f.Location = *r.Location
	}
	if r.Description != nil {
		f.Description = r.Description
	}
	if r.ImageURL != nil {
		f.ImageURL = r.ImageURL
	}
	return &f
}

// Response модели

// FieldResponse ответ с данными поля
type FieldResponse struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"ownerId"`
	CityID      int64     `json:"cityId"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GenerationSummary итог генерации слотов при создании поля
type GenerationSummary struct {
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
	From      string `json:"from"`
	To        string `json:"to"` // последний день окна включительно
}

// CreateFieldResponse ответ на создание поля
type CreateFieldResponse struct {
	Field      FieldResponse      `json:"field"`
	Generation *GenerationSummary `json:"generation,omitempty"`
}

// FieldListResponse ответ со списком полей
type FieldListResponse struct {
	Fields []FieldResponse `json:"fields"`
}

// CityResponse город
type CityResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CityListResponse список городов
type CityListResponse struct {
	Cities []CityResponse `json:"cities"`
}

// Методы конвертации

// FromDomainField конвертирует domain модель в DTO
func FromDomainField(f *domain.Field) *FieldResponse {
	if f == nil {
		return nil
	}
	return &FieldResponse{
		ID:          f.ID,
		OwnerID:     f.OwnerID,
		CityID:      f.CityID,
		Name:        f.Name,
		Location:    f.Location,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// FromDomainFieldList конвертирует список полей
func FromDomainFieldList(fields []*domain.Field) *FieldListResponse {
	resp := &FieldListResponse{Fields: make([]FieldResponse, 0, len(fields))}
	for _, f := range fields {
		resp.Fields = append(resp.Fields, *FromDomainField(f))
	}
	return resp
}

// FromDomainCityList конвертирует список городов
func FromDomainCityList(cities []*domain.City) *CityListResponse {
	resp := &CityListResponse{Cities: make([]CityResponse, 0, len(cities))}
	for _, c := range cities {
		resp.Cities = append(resp.Cities, CityResponse{ID: c.ID, Name: c.Name})
	}
	return resp
}
