package resources

import (
	"strings"
	"time"

	"github.com/brunosoares877/Crefaz/internal/brdoc"
	"github.com/brunosoares877/Crefaz/internal/models"
)

// Сообщения об ошибках показываются пользователю как есть.
const (
	msgCPFFormat   = "CPF deve ter formato válido (11 dígitos ou XXX.XXX.XXX-XX)"
	msgEmailFormat = "Email deve ter formato válido"
	msgPhoneFormat = "Telefone deve ter formato válido"
	msgWhatsFormat = "WhatsApp deve ter formato válido"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func checkContacts(cpf, email, telefone, whatsapp string) error {
	if cpf != "" && !brdoc.ValidCPF(cpf) {
		return models.Invalid("cpf", msgCPFFormat)
	}
	if email != "" && !brdoc.ValidEmail(email) {
		return models.Invalid("email", msgEmailFormat)
	}
	if telefone != "" && !brdoc.ValidPhone(telefone) {
		return models.Invalid("telefone", msgPhoneFormat)
	}
	if whatsapp != "" && !brdoc.ValidPhone(whatsapp) {
		return models.Invalid("whatsapp", msgWhatsFormat)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func validateLeadCreate(r models.CreateLeadRequest) error {
	if blank(r.Nome) {
		return models.Invalid("nome", "Nome é obrigatório")
	}
	if blank(r.CPF) {
		return models.Invalid("cpf", "CPF é obrigatório")
	}

	return checkContacts(r.CPF, r.Email, r.Telefone, r.Whatsapp)
}

func validateLeadUpdate(r models.UpdateLeadRequest) error {
	return checkContacts(deref(r.CPF), deref(r.Email), deref(r.Telefone), deref(r.Whatsapp))
}

// ageOn — полных лет на дату now.
func ageOn(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}

	return age
}

func clienteValidator(now func() time.Time) func(models.CreateClienteRequest) error {
	return func(r models.CreateClienteRequest) error {
		if blank(r.Nome) {
			return models.Invalid("nome", "Nome é obrigatório")
		}
		if blank(r.CPF) {
			return models.Invalid("cpf", "CPF é obrigatório")
		}
		if err := checkContacts(r.CPF, r.Email, r.Telefone, r.Whatsapp); err != nil {
			return err
		}

		if r.DataNascimento != "" {
			birth, ok := brdoc.ParseDate(r.DataNascimento)
			if !ok {
				return models.Invalid("dataNascimento", "Data de nascimento inválida")
			}
			if age := ageOn(birth, now()); age < 18 || age > 120 {
				return models.Invalid("dataNascimento", "Cliente deve ter entre 18 e 120 anos")
			}
		}

		if r.RendaMensal < 0 {
			return models.Invalid("rendaMensal", "Renda mensal não pode ser negativa")
		}

		return nil
	}
}

func validateClienteUpdate(r models.UpdateClienteRequest) error {
	if err := checkContacts("", deref(r.Email), deref(r.Telefone), deref(r.Whatsapp)); err != nil {
		return err
	}
	if r.RendaMensal != nil && *r.RendaMensal < 0 {
		return models.Invalid("rendaMensal", "Renda mensal não pode ser negativa")
	}

	return nil
}

// notPast проверяет, что дата (ISO или DD/MM/AAAA) не раньше сегодняшнего дня.
func notPast(field, value string, now time.Time) error {
	if blank(value) {
		return models.Invalid(field, "Data de vencimento é obrigatória")
	}

	d, ok := brdoc.ParseDate(value)
	if !ok {
		return models.Invalid(field, "Data de vencimento inválida")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Before(today) {
		return models.Invalid(field, "Data de vencimento não pode ser no passado")
	}

	return nil
}

func propostaValidator(now func() time.Time) func(models.CreatePropostaRequest) error {
	return func(r models.CreatePropostaRequest) error {
		switch {
		case blank(r.ClienteID):
			return models.Invalid("clienteId", "ID do cliente é obrigatório")
		case blank(r.ProdutoID):
			return models.Invalid("produtoId", "ID do produto é obrigatório")
		case r.ValorSolicitado <= 0:
			return models.Invalid("valorSolicitado", "Valor solicitado deve ser maior que zero")
		case r.PrazoMeses <= 0:
			return models.Invalid("prazoMeses", "Prazo em meses deve ser maior que zero")
		}

		return notPast("dataVencimento", r.DataVencimento, now())
	}
}

func contratoValidator(now func() time.Time) func(models.CreateContratoRequest) error {
	return func(r models.CreateContratoRequest) error {
		if blank(r.PropostaID) {
			return models.Invalid("propostaId", "ID da proposta é obrigatório")
		}

		return notPast("dataVencimento", r.DataVencimento, now())
	}
}

func validateUsuarioCreate(r models.CreateUsuarioRequest) error {
	switch {
	case blank(r.Nome):
		return models.Invalid("nome", "Nome é obrigatório")
	case blank(r.Email):
		return models.Invalid("email", "Email é obrigatório")
	case !brdoc.ValidEmail(r.Email):
		return models.Invalid("email", msgEmailFormat)
	case len(r.Password) < 6:
		return models.Invalid("password", "Senha deve ter pelo menos 6 caracteres")
	case r.Role == "":
		return models.Invalid("role", "Role é obrigatório")
	}

	return checkContacts("", "", r.Telefone, "")
}

func validateUsuarioUpdate(r models.UpdateUsuarioRequest) error {
	if r.Password != nil && len(*r.Password) < 6 {
		return models.Invalid("password", "Senha deve ter pelo menos 6 caracteres")
	}

	return checkContacts("", deref(r.Email), deref(r.Telefone), "")
}
