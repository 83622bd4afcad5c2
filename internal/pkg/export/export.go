// Package export gera as planilhas da tela de Relatórios (CSV com ';' e XLSX).
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	apperror "marmitaria/internal/errors"
)

// Formato de saída suportado.
type Formato string

const (
	CSV  Formato = "csv"
	XLSX Formato = "xlsx"
)

// ContentType devolve o MIME do formato.
func (f Formato) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case CSV:
		return "text/csv; charset=utf-8"
	}
	return "application/octet-stream"
}

// ParseFormato aceita "csv" e "xlsx".
func ParseFormato(s string) (Formato, error) {
	switch Formato(s) {
	case CSV, XLSX:
		return Formato(s), nil
	}
	return "", apperror.NewValidationError(fmt.Sprintf("Formato de exportação inválido: %q.", s))
}

// Tabela é uma aba da planilha: cabeçalho e linhas já formatadas.
type Tabela struct {
	Nome       string
	Cabecalhos []string
	Linhas     [][]string
}

// utf8BOM faz o Excel abrir o CSV com acentos corretos.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV escreve a tabela com delimitador ';' (padrão do Excel em pt-BR).
func WriteCSV(w io.Writer, t Tabela) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return apperror.NewInternalError("falha ao escrever CSV", err)
	}
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(t.Cabecalhos); err != nil {
		return apperror.NewInternalError("falha ao escrever cabeçalhos CSV", err)
	}
	if err := writer.WriteAll(t.Linhas); err != nil {
		return apperror.NewInternalError("falha ao escrever linhas CSV", err)
	}
	return nil
}

// WriteXLSX escreve uma aba por tabela, com cabeçalho destacado e filtro automático.
func WriteXLSX(w io.Writer, tabelas ...Tabela) (err error) {
	xlsx := excelize.NewFile()
	defer func() {
		if cerr := xlsx.Close(); cerr != nil && err == nil {
			err = apperror.NewInternalError("falha ao fechar XLSX", cerr)
		}
	}()

	estiloCabecalho, err := xlsx.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#EA580C"}, Pattern: 1},
		Font:      &excelize.Font{Color: "FFFFFF", Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return apperror.NewInternalError("falha ao criar estilo XLSX", err)
	}

	for i, t := range tabelas {
		nome := t.Nome
		if nome == "" {
			nome = fmt.Sprintf("Planilha%d", i+1)
		}
		if i == 0 {
			if err := xlsx.SetSheetName("Sheet1", nome); err != nil {
				return apperror.NewInternalError("falha ao renomear planilha", err)
			}
		} else if _, err := xlsx.NewSheet(nome); err != nil {
			return apperror.NewInternalError(fmt.Sprintf("falha ao criar planilha '%s'", nome), err)
		}

		if err := xlsx.SetSheetRow(nome, "A1", &t.Cabecalhos); err != nil {
			return apperror.NewInternalError("falha ao escrever cabeçalhos XLSX", err)
		}
		ultima, _ := excelize.CoordinatesToCellName(max(len(t.Cabecalhos), 1), 1)
		if err := xlsx.SetCellStyle(nome, "A1", ultima, estiloCabecalho); err != nil {
			return apperror.NewInternalError("falha ao aplicar estilo XLSX", err)
		}

		for r, linha := range t.Linhas {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			row := make([]interface{}, len(linha))
			for c, v := range linha {
				row[c] = v
			}
			if err := xlsx.SetSheetRow(nome, cell, &row); err != nil {
				return apperror.NewInternalError("falha ao escrever linha XLSX", err)
			}
		}

		if len(t.Cabecalhos) > 0 {
			fim, _ := excelize.CoordinatesToCellName(len(t.Cabecalhos), len(t.Linhas)+1)
			_ = xlsx.AutoFilter(nome, "A1:"+fim, nil)
			colFim, _ := excelize.ColumnNumberToName(len(t.Cabecalhos))
			_ = xlsx.SetColWidth(nome, "A", colFim, 20)
		}
	}

	if _, err := xlsx.WriteTo(w); err != nil {
		return apperror.NewInternalError("falha ao gerar XLSX", err)
	}
	return nil
}

// Write escolhe o escritor pelo formato. CSV usa apenas a primeira tabela.
func Write(w io.Writer, f Formato, tabelas ...Tabela) error {
	if len(tabelas) == 0 {
		return apperror.NewValidationError("Nada para exportar.")
	}
	if f == CSV {
		return WriteCSV(w, tabelas[0])
	}
	return WriteXLSX(w, tabelas...)
}
