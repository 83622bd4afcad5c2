package domain

// EstadoPagina é o estado de carregamento de uma página.
type EstadoPagina string

const (
	EstadoIdle       EstadoPagina = "idle"
	EstadoCarregando EstadoPagina = "loading"
	EstadoCarregado  EstadoPagina = "loaded"
	EstadoErro       EstadoPagina = "error"
)

// Modal identifica um dos diálogos de uma página.
type Modal string

const (
	ModalNenhum         Modal = ""
	ModalCriar          Modal = "criar"
	ModalEditar         Modal = "editar"
	ModalVisualizar     Modal = "visualizar"
	ModalExcluir        Modal = "excluir"
	ModalForcarExclusao Modal = "forcar-exclusao"
	ModalMovimentacao   Modal = "movimentacao"
	ModalFechar         Modal = "fechar"
)

// Modais são flags independentes por diálogo. Abrir um não fecha os outros.
type Modais struct {
	Criar          bool `json:"criar"`
	Editar         bool `json:"editar"`
	Visualizar     bool `json:"visualizar"`
	Excluir        bool `json:"excluir"`
	ForcarExclusao bool `json:"forcarExclusao"`
	Movimentacao   bool `json:"movimentacao"`
	Fechar         bool `json:"fechar"`
}

// NovasModais liga as flags pedidas (e.g., a partir de ?modal=editar&modal=excluir).
func NovasModais(nomes ...string) Modais {
	var m Modais
	for _, n := range nomes {
		switch Modal(n) {
		case ModalCriar:
			m.Criar = true
		case ModalEditar:
			m.Editar = true
		case ModalVisualizar:
			m.Visualizar = true
		case ModalExcluir:
			m.Excluir = true
		case ModalForcarExclusao:
			m.ForcarExclusao = true
		case ModalMovimentacao:
			m.Movimentacao = true
		case ModalFechar:
			m.Fechar = true
		}
	}
	return m
}

// Algum informa se há algum diálogo aberto.
func (m Modais) Algum() bool {
	return m.Criar || m.Editar || m.Visualizar || m.Excluir || m.ForcarExclusao || m.Movimentacao || m.Fechar
}

// NivelNotificacao controla a cor da notificação.
type NivelNotificacao string

const (
	NotificacaoSucesso NivelNotificacao = "sucesso"
	NotificacaoErro    NivelNotificacao = "erro"
	NotificacaoAviso   NivelNotificacao = "aviso"
)

// Notificacao é a mensagem descartável exibida no topo da página.
type Notificacao struct {
	Nivel     NivelNotificacao `json:"nivel"`
	Titulo    string           `json:"titulo"`
	Descricao string           `json:"descricao"`
}

// Pagina agrupa o que toda página carrega além dos seus dados.
type Pagina struct {
	Estado        EstadoPagina  `json:"estado"`
	Modais        Modais        `json:"modais"`
	Busca         string        `json:"busca"`
	SelecionadoID int           `json:"selecionadoId,omitempty"`
	Notificacoes  []Notificacao `json:"notificacoes,omitempty"`
}
