package entity

import "time"

// OnboardingState etapa del alta de una empresa.
type OnboardingState string

// Etapas del onboarding, en orden. Solo se avanza o retrocede de a un paso.
const (
	OnboardingCompanyInfo  OnboardingState = "collecting_company_info"
	OnboardingDomain       OnboardingState = "choosing_domain"
	OnboardingPlan         OnboardingState = "choosing_plan"
	OnboardingAdminAccount OnboardingState = "creating_admin_account"
	OnboardingComplete     OnboardingState = "complete"
)

var onboardingOrder = []OnboardingState{
	OnboardingCompanyInfo,
	OnboardingDomain,
	OnboardingPlan,
	OnboardingAdminAccount,
	OnboardingComplete,
}

func onboardingIndex(s OnboardingState) int {
	for i, st := range onboardingOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// NextOnboardingState devuelve la etapa siguiente; ok=false en complete o estado desconocido.
func NextOnboardingState(s OnboardingState) (OnboardingState, bool) {
	i := onboardingIndex(s)
	if i < 0 || i >= len(onboardingOrder)-1 {
		return "", false
	}
	return onboardingOrder[i+1], true
}

// PrevOnboardingState devuelve la etapa anterior; ok=false en la primera etapa y en complete.
func PrevOnboardingState(s OnboardingState) (OnboardingState, bool) {
	i := onboardingIndex(s)
	if i <= 0 || s == OnboardingComplete {
		return "", false
	}
	return onboardingOrder[i-1], true
}

// OnboardingDraft registro transitorio que entrega los datos del registro al onboarding
// y acumula lo capturado en cada etapa hasta el commit final.
type OnboardingDraft struct {
	ID    string
	State OnboardingState

	// Cuenta del administrador (capturada en el registro).
	AdminEmail        string
	AdminName         string
	AdminPhone        string
	AdminPasswordHash string

	// Datos de la empresa.
	CompanyName string
	Address     string
	Currency    string
	Timezone    string
	Slug        string
	Plan        string

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// Expired informa si el borrador venció.
func (d *OnboardingDraft) Expired(now time.Time) bool {
	return !d.ExpiresAt.IsZero() && !now.Before(d.ExpiresAt)
}
