package usecase

import (
	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
)

func toFarmerResponse(f *entity.Farmer) *dto.FarmerResponse {
	if f == nil {
		return nil
	}
	return &dto.FarmerResponse{
		ID:               f.ID,
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		FullName:         f.FullName(),
		ContactNumber:    f.ContactNumber,
		Email:            f.Email,
		Address:          f.Address,
		RegistrationDate: f.RegistrationDate,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:             p.ID,
		FarmerID:       p.FarmerID,
		Name:           p.Name,
		Category:       p.Category,
		ProductionDate: p.ProductionDate,
		Description:    p.Description,
		AddedDate:      p.AddedDate,
	}
	if p.Farmer != nil {
		out.FarmerName = p.Farmer.FullName()
	}
	return out
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out
}

func toAccountResponse(a *entity.Account, roles []entity.Role) dto.AccountResponse {
	out := dto.AccountResponse{ID: a.ID, UserName: a.UserName, Email: a.Email, CreatedAt: a.CreatedAt}
	for _, r := range roles {
		out.Roles = append(out.Roles, r.String())
	}
	return out
}
