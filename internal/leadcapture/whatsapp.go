package leadcapture

import (
	"net/url"
	"strings"

	"github.com/brunosoares877/Crefaz/internal/brdoc"
	"github.com/brunosoares877/Crefaz/internal/models"
)

// WhatsAppLink собирает ссылку wa.me для передачи лида менеджеру на номер phone.
func WhatsAppLink(lead models.CapturedLead, phone string) string {
	msg := strings.Join([]string{
		"🆕 *Novo Lead - Simulação de Crédito*",
		"",
		"👤 *Nome:* " + lead.Nome,
		"📱 *WhatsApp:* " + brdoc.FormatPhone(lead.Whatsapp),
		"🆔 *CPF:* " + brdoc.FormatCPF(lead.CPF),
		"📅 *Nascimento:* " + lead.DataNascimento,
		"⚡ *Companhia:* " + lead.CompanhiaEnergia,
		"📅 *Cadastro:* " + lead.CreatedAt.Format("02/01/2006 15:04"),
		"",
		"💰 Cliente interessado em simulação de crédito com débito na conta de luz.",
	}, "\n")

	// wa.me ожидает %20, а не '+'.
	text := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")

	return "https://wa.me/" + brdoc.Digits(phone) + "?text=" + text
}
