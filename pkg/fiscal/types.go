package fiscal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmbiente is returned for environment flags other than
	// "1" (production) and "2" (homologation).
	ErrInvalidAmbiente = errors.New("invalid ambiente")
	// ErrInvalidUF is returned for codes outside the IBGE state table.
	ErrInvalidUF = errors.New("invalid UF code")
)

// Ambiente is the fiscal environment flag (tpAmb).
type Ambiente string

const (
	AmbienteProducao    Ambiente = "1"
	AmbienteHomologacao Ambiente = "2"
)

// ParseAmbiente validates an environment flag.
func ParseAmbiente(s string) (Ambiente, error) {
	switch Ambiente(s) {
	case AmbienteProducao, AmbienteHomologacao:
		return Ambiente(s), nil
	default:
		return "", fmt.Errorf("%w: %q, expected \"1\" or \"2\"", ErrInvalidAmbiente, s)
	}
}

// UF is a federal state code from the IBGE table (cUF).
type UF string

// IBGE state codes.
const (
	UFRondonia         UF = "11"
	UFAcre             UF = "12"
	UFAmazonas         UF = "13"
	UFRoraima          UF = "14"
	UFPara             UF = "15"
	UFAmapa            UF = "16"
	UFTocantins        UF = "17"
	UFMaranhao         UF = "21"
	UFPiaui            UF = "22"
	UFCeara            UF = "23"
	UFRioGrandeDoNorte UF = "24"
	UFParaiba          UF = "25"
	UFPernambuco       UF = "26"
	UFAlagoas          UF = "27"
	UFSergipe          UF = "28"
	UFBahia            UF = "29"
	UFMinasGerais      UF = "31"
	UFEspiritoSanto    UF = "32"
	UFRioDeJaneiro     UF = "33"
	UFSaoPaulo         UF = "35"
	UFParana           UF = "41"
	UFSantaCatarina    UF = "42"
	UFRioGrandeDoSul   UF = "43"
	UFMatoGrossoDoSul  UF = "50"
	UFMatoGrosso       UF = "51"
	UFGoias            UF = "52"
	UFDistritoFederal  UF = "53"
)

var ufCodes = map[UF]struct{}{
	UFRondonia: {}, UFAcre: {}, UFAmazonas: {}, UFRoraima: {}, UFPara: {},
	UFAmapa: {}, UFTocantins: {}, UFMaranhao: {}, UFPiaui: {}, UFCeara: {},
	UFRioGrandeDoNorte: {}, UFParaiba: {}, UFPernambuco: {}, UFAlagoas: {},
	UFSergipe: {}, UFBahia: {}, UFMinasGerais: {}, UFEspiritoSanto: {},
	UFRioDeJaneiro: {}, UFSaoPaulo: {}, UFParana: {}, UFSantaCatarina: {},
	UFRioGrandeDoSul: {}, UFMatoGrossoDoSul: {}, UFMatoGrosso: {},
	UFGoias: {}, UFDistritoFederal: {},
}

// ParseUF validates an IBGE state code.
func ParseUF(s string) (UF, error) {
	if _, ok := ufCodes[UF(s)]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidUF, s)
	}
	return UF(s), nil
}
