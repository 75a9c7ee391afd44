package service

import (
	"context"
	"errors"

	"phonenumber_backend/internal/numbers/transport"
	"phonenumber_backend/platform/apperr"
	"phonenumber_backend/platform/config"
	"phonenumber_backend/platform/logger"
	"phonenumber_backend/platform/phone"
)

const codeUnsupportedOperation = "unsupported_operation"

// Service exposes the phone facade to the HTTP and batch layers and maps its
// errors onto apperr kinds.
type Service struct {
	defaultRegion string
	log           *logger.Logger
}

// New creates the numbers service. An empty default region means numbers
// without an explicit region must be in international format.
func New(cfg config.PhoneConfig, log *logger.Logger) *Service {
	return &Service{defaultRegion: cfg.GetDefaultRegion(), log: log}
}

// Parse parses req, applying the configured default region when req has none.
func (s *Service) Parse(ctx context.Context, req transport.NumberRequest) (phone.PhoneNumber, error) {
	var (
		num    phone.PhoneNumber
		err    error
		region string
	)

	switch {
	case req.Region != nil:
		region = *req.Region
		num, err = phone.ParseInRegion(req.Number, region)
	case s.defaultRegion != "":
		region = s.defaultRegion
		num, err = phone.ParseInRegion(req.Number, region)
	default:
		num, err = phone.Parse(req.Number)
	}
	if err != nil {
		return phone.PhoneNumber{}, s.mapError(ctx, region, err)
	}
	return num, nil
}

// Describe parses req and returns every rendering of the number.
func (s *Service) Describe(ctx context.Context, req transport.NumberRequest) (transport.NumberResponse, error) {
	num, err := s.Parse(ctx, req)
	if err != nil {
		return transport.NumberResponse{}, err
	}
	return ToResponse(num), nil
}

// Validate parses req and reports whether the number is valid.
func (s *Service) Validate(ctx context.Context, req transport.NumberRequest) (transport.ValidateResponse, error) {
	num, err := s.Parse(ctx, req)
	if err != nil {
		return transport.ValidateResponse{}, err
	}
	return transport.ValidateResponse{Valid: phone.IsValidNumber(num)}, nil
}

// Format parses req and renders it in req.Format. Unknown format names are
// not an error; they produce the default rendering with Fallback set.
func (s *Service) Format(ctx context.Context, req transport.FormatRequest) (transport.FormatResponse, error) {
	num, err := s.Parse(ctx, req.NumberRequest)
	if err != nil {
		return transport.FormatResponse{}, err
	}

	_, known := phone.LookupMode(req.Format)
	return transport.FormatResponse{
		Formatted: phone.FormatNumber(num, req.Format),
		Format:    req.Format,
		Fallback:  !known,
	}, nil
}

// Compare parses both numbers and applies req.Op.
func (s *Service) Compare(ctx context.Context, req transport.CompareRequest) (transport.CompareResponse, error) {
	a, err := s.Parse(ctx, req.A)
	if err != nil {
		return transport.CompareResponse{}, err
	}
	b, err := s.Parse(ctx, req.B)
	if err != nil {
		return transport.CompareResponse{}, err
	}

	result, err := a.Compare(phone.Operator(req.Op), b)
	if err != nil {
		return transport.CompareResponse{}, s.mapError(ctx, "", err)
	}
	return transport.CompareResponse{Op: req.Op, Result: result}, nil
}

// Formats lists the registered format names.
func (s *Service) Formats() transport.FormatsResponse {
	formats := phone.Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return transport.FormatsResponse{Formats: names}
}

// Regions lists the regions the engine knows with their calling codes.
func (s *Service) Regions() transport.RegionsResponse {
	regions := phone.SupportedRegions()
	infos := make([]transport.RegionInfo, 0, len(regions))
	for _, r := range regions {
		infos = append(infos, transport.RegionInfo{Code: string(r), CountryCode: r.CountryCode()})
	}
	return transport.RegionsResponse{Regions: infos}
}

// ToResponse renders num for API consumers.
func ToResponse(num phone.PhoneNumber) transport.NumberResponse {
	resp := transport.NumberResponse{
		CountryCode:    num.CountryCode(),
		NationalNumber: num.NationalNumber(),
		Valid:          num.IsValid(),
		E164:           num.Format(string(phone.E164)),
		Display:        num.String(),
		Repr:           num.GoString(),
	}
	if ext, ok := num.Extension(); ok {
		resp.Extension = &ext
	}
	if carrier, ok := num.Carrier(); ok {
		resp.Carrier = &carrier
	}
	return resp
}

func (s *Service) mapError(ctx context.Context, region string, err error) error {
	var parseErr *phone.ParseError
	if errors.As(err, &parseErr) {
		s.log.WithContext(ctx).ParseRejected(region, parseErr.Kind.String(), parseErr.Message)
		return apperr.Wrap(apperr.KindUnprocessable, parseErr.Message, err).WithCode(parseErr.Kind.String())
	}

	var unsupported *phone.UnsupportedOperationError
	if errors.As(err, &unsupported) {
		return apperr.Wrap(apperr.KindBadRequest, unsupported.Error(), err).WithCode(codeUnsupportedOperation)
	}

	return apperr.Wrap(apperr.KindInternal, "internal error", err)
}
