package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/validation"
)

func farmerRegistration(phone string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:               "pedro@example.com",
		Password:            "Secret#1",
		ConfirmPassword:     "Secret#1",
		Role:                "Farmer",
		FarmerContactNumber: phone,
	}
}

func TestPhone_Validos(t *testing.T) {
	v := validation.New()
	for _, phone := range []string{
		"",
		"3001234567",
		"+57 (300) 123-4567",
		"+1234567890123456789", // 20 caracteres, el ancho de la columna
	} {
		assert.Nil(t, v.Struct(farmerRegistration(phone)), "teléfono %q", phone)
	}
}

// Las columnas contact_number son VARCHAR(20): nada más largo puede pasar la validación.
func TestPhone_MasDe20CaracteresSeRechaza(t *testing.T) {
	v := validation.New()
	for _, phone := range []string{
		"+12345678901234567890",
		"123456789012345678901",
		"  3001234567" + strings.Repeat(" ", 10),
	} {
		fe := v.Struct(farmerRegistration(phone))
		require.NotNil(t, fe, "teléfono %q", phone)
		assert.Contains(t, fe, "farmer_contact_number", "teléfono %q", phone)
	}

	req := dto.FarmerRequest{
		FirstName: "Ana", LastName: "Ruiz", Email: "ana@example.com", Address: "Finca 1",
		ContactNumber: "+12345678901234567890",
	}
	fe := v.Struct(req)
	require.NotNil(t, fe)
	assert.Contains(t, fe, "contact_number")
}

func TestPhone_FormatoInvalido(t *testing.T) {
	v := validation.New()
	for _, phone := range []string{"12345", "abc1234567", "+57-300-12a-4567"} {
		fe := v.Struct(farmerRegistration(phone))
		require.NotNil(t, fe, "teléfono %q", phone)
		assert.Equal(t, "El campo farmer_contact_number no es un número de teléfono válido.", fe["farmer_contact_number"])
	}
}

func TestStruct_ClavesPorNombreJSON(t *testing.T) {
	fe := validation.New().Struct(dto.RegisterRequest{Password: "abc", ConfirmPassword: "abd"})
	require.NotNil(t, fe)
	assert.Contains(t, fe, "email")
	assert.Contains(t, fe, "role")
	assert.Equal(t, "La contraseña y su confirmación no coinciden.", fe["confirm_password"])
}
