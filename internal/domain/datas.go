package domain

import (
	"encoding/json"

	"marmitaria/internal/pkg/dateutil"
)

// UnmarshalJSON aceita dataVenda como "yyyy-MM-dd", no fuso local.
func (in *VendaInput) UnmarshalJSON(b []byte) error {
	type alias VendaInput
	aux := struct {
		*alias
		DataVenda *string `json:"dataVenda"`
	}{alias: (*alias)(in)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.DataVenda == nil || *aux.DataVenda == "" {
		return nil
	}
	t, err := dateutil.ParseLocalDate(*aux.DataVenda)
	if err != nil {
		return err
	}
	in.DataVenda = t
	return nil
}

// UnmarshalJSON aceita dataValidade como "yyyy-MM-dd"; vazio ou null deixa sem validade.
func (in *InsumoInput) UnmarshalJSON(b []byte) error {
	type alias InsumoInput
	aux := struct {
		*alias
		DataValidade *string `json:"dataValidade"`
	}{alias: (*alias)(in)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.DataValidade == nil || *aux.DataValidade == "" {
		in.DataValidade = nil
		return nil
	}
	t, err := dateutil.ParseLocalDate(*aux.DataValidade)
	if err != nil {
		return err
	}
	in.DataValidade = &t
	return nil
}
