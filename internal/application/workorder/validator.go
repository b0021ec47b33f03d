package workorder

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	domain "github.com/maintenance/backend/internal/domain/workorder"
	"github.com/shopspring/decimal"
)

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// orderInput is the coerced payload before rule checks. Presence and type
// problems have already been recorded by payloadReader.
type orderInput struct {
	Date      time.Time `json:"date"`
	Location  string    `json:"location" validate:"max=120"`
	BoardID   string    `json:"board_id" validate:"omitempty,board"`
	CircuitID string    `json:"circuit_id" validate:"max=80"`
	VehicleID string    `json:"vehicle_id" validate:"omitempty,vehicle"`

	OdometerStart *decimal.Decimal `json:"odometer_start" validate:"omitempty,gte=0"`
	OdometerEnd   *decimal.Decimal `json:"odometer_end" validate:"omitempty,gte=0"`

	MaintenanceType string `json:"maintenance_type" validate:"omitempty,maintenance_type"`
	Priority        string `json:"priority" validate:"omitempty,priority"`
	StartTime       string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime         string `json:"end_time" validate:"omitempty,hhmm"`
	CostCenter      string `json:"cost_center" validate:"max=120"`

	Technicians []technicianInput `json:"technicians" validate:"dive"`

	TaskRequested  string `json:"task_requested" validate:"max=5000"`
	TaskCompleted  string `json:"task_completed" validate:"max=5000"`
	TaskPending    string `json:"task_pending" validate:"max=5000"`
	EquipmentNotes string `json:"equipment_notes" validate:"max=5000"`

	Materials []materialInput `json:"materials" validate:"dive"`
}

type technicianInput struct {
	EmployeeID string `json:"employee_id" validate:"max=20"`
	Name       string `json:"name" validate:"max=120"`
}

type materialInput struct {
	Name     string           `json:"name" validate:"max=200"`
	Quantity *decimal.Decimal `json:"quantity" validate:"omitempty,gt=0"`
	Unit     string           `json:"unit" validate:"omitempty,unit"`
}

// Validator turns an untyped payload into a WorkOrder.
// It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a validator with the catalog and time-of-day tags registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names so error namespaces match payload paths
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Range tags compare decimals as float64
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	mustRegisterCatalog(v, "board", domain.Boards)
	mustRegisterCatalog(v, "vehicle", domain.Vehicles)
	mustRegisterCatalog(v, "unit", domain.Units)
	mustRegisterCatalog(v, "maintenance_type", domain.MaintenanceTypes)
	mustRegisterCatalog(v, "priority", domain.Priorities)
	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	v.RegisterStructValidation(validateOdometer, orderInput{})

	return &Validator{validate: v}
}

func mustRegisterCatalog(v *validator.Validate, tag string, c domain.Catalog) {
	if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return c.Contains(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// validateOdometer rejects an end reading below the start reading
func validateOdometer(sl validator.StructLevel) {
	in := sl.Current().Interface().(orderInput)
	if in.OdometerStart == nil || in.OdometerEnd == nil {
		return
	}
	if in.OdometerEnd.LessThan(*in.OdometerStart) {
		sl.ReportError(in.OdometerEnd, "odometer_end", "OdometerEnd", "odometer_order", "odometer_start")
	}
}

// Validate checks the payload and returns the typed order, or a
// *domain.ValidationError listing every failed field. Unknown keys are ignored.
func (v *Validator) Validate(payload map[string]any) (*domain.WorkOrder, error) {
	errs := domain.NewValidationError()
	if payload == nil {
		errs.Add("non_field_errors", MsgNoData)
		return nil, errs
	}

	in := v.coerce(payload, errs)

	if err := v.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		for _, fe := range fieldErrs {
			path := fieldPath(fe)
			// a type or presence error already explains this field
			if errs.Has(path) {
				continue
			}
			errs.Add(path, ruleMessage(fe))
		}
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return in.toDomain(), nil
}

func (v *Validator) coerce(payload map[string]any, errs *domain.ValidationError) *orderInput {
	r := &payloadReader{errs: errs}

	in := &orderInput{
		Date:            r.date(payload, "date", ""),
		Location:        r.str(payload, "location", "", false),
		BoardID:         r.str(payload, "board_id", "", true),
		CircuitID:       r.str(payload, "circuit_id", "", true),
		VehicleID:       r.str(payload, "vehicle_id", "", false),
		OdometerStart:   r.number(payload, "odometer_start", "", false),
		OdometerEnd:     r.number(payload, "odometer_end", "", false),
		MaintenanceType: r.str(payload, "maintenance_type", "", false),
		Priority:        r.str(payload, "priority", "", false),
		StartTime:       r.str(payload, "start_time", "", false),
		EndTime:         r.str(payload, "end_time", "", false),
		CostCenter:      r.str(payload, "cost_center", "", false),
		TaskRequested:   r.str(payload, "task_requested", "", false),
		TaskCompleted:   r.str(payload, "task_completed", "", false),
		TaskPending:     r.str(payload, "task_pending", "", false),
		EquipmentNotes:  r.str(payload, "equipment_notes", "", false),
	}

	techs := r.objects(payload, "technicians", "", true)
	if techs != nil && len(techs) == 0 && !errs.Has("technicians") {
		errs.Add("technicians", MsgEmptyList)
	}
	in.Technicians = make([]technicianInput, len(techs))
	for i, t := range techs {
		if t == nil {
			continue
		}
		prefix := indexPath("technicians", i)
		in.Technicians[i] = technicianInput{
			EmployeeID: r.str(t, "employee_id", prefix, true),
			Name:       r.str(t, "name", prefix, true),
		}
	}

	mats := r.objects(payload, "materials", "", false)
	in.Materials = make([]materialInput, len(mats))
	for i, m := range mats {
		if m == nil {
			continue
		}
		prefix := indexPath("materials", i)
		in.Materials[i] = materialInput{
			Name:     r.str(m, "name", prefix, true),
			Quantity: r.number(m, "quantity", prefix, true),
			Unit:     r.str(m, "unit", prefix, true),
		}
	}

	return in
}

func (in *orderInput) toDomain() *domain.WorkOrder {
	order := &domain.WorkOrder{
		Date:            in.Date,
		Location:        in.Location,
		BoardID:         in.BoardID,
		CircuitID:       in.CircuitID,
		VehicleID:       in.VehicleID,
		OdometerStart:   in.OdometerStart,
		OdometerEnd:     in.OdometerEnd,
		MaintenanceType: in.MaintenanceType,
		Priority:        in.Priority,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		CostCenter:      in.CostCenter,
		TaskRequested:   in.TaskRequested,
		TaskCompleted:   in.TaskCompleted,
		TaskPending:     in.TaskPending,
		EquipmentNotes:  in.EquipmentNotes,
		Technicians:     make([]domain.Technician, len(in.Technicians)),
	}
	for i, t := range in.Technicians {
		order.Technicians[i] = domain.Technician{EmployeeID: t.EmployeeID, Name: t.Name}
	}
	if len(in.Materials) > 0 {
		order.Materials = make([]domain.Material, len(in.Materials))
		for i, m := range in.Materials {
			order.Materials[i] = domain.Material{Name: m.Name, Quantity: *m.Quantity, Unit: m.Unit}
		}
	}
	return order
}

// fieldPath drops the root struct name from the namespace:
// "orderInput.technicians[0].name" becomes "technicians[0].name"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
