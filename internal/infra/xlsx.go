package infra

import (
	"fmt"
	"io"

	"eskimo/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// WriteReporteXLSX renders rep as a workbook with one sheet per section.
func WriteReporteXLSX(w io.Writer, rep *dto.ReporteVentas) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	const resumen = "Resumen"
	if err := f.SetSheetName("Sheet1", resumen); err != nil {
		return err
	}
	filas := [][]interface{}{
		{rep.Negocio},
		{"Desde", rep.Desde.Format("2006-01-02")},
		{"Hasta", rep.Hasta.AddDate(0, 0, -1).Format("2006-01-02")},
		{"Total vendido", rep.Resumen.Total.InexactFloat64()},
		{"Ganancia", rep.Resumen.Ganancia.InexactFloat64()},
		{"Unidades", rep.Resumen.Cantidad},
	}
	if err := escribirFilas(f, resumen, filas); err != nil {
		return err
	}
	_ = f.SetCellStyle(resumen, "A1", "A6", bold)
	_ = f.SetColWidth(resumen, "A", "A", 22)

	empleados := [][]interface{}{{"ID", "Empleado", "Total vendido"}}
	for _, e := range rep.Empleados {
		empleados = append(empleados, []interface{}{e.ID, e.Name, e.TotalSales.InexactFloat64()})
	}
	if err := nuevaHoja(f, "Empleados", empleados, bold); err != nil {
		return err
	}

	productos := [][]interface{}{{"ID", "Producto", "Unidades vendidas"}}
	for _, p := range rep.Productos {
		productos = append(productos, []interface{}{p.ID, p.Name, p.QuantitySold})
	}
	if err := nuevaHoja(f, "Productos", productos, bold); err != nil {
		return err
	}

	ventas := [][]interface{}{{"ID", "Fecha", "Producto", "Empleado", "Cantidad", "Precio compra", "Precio venta", "Total"}}
	for _, v := range rep.Ventas {
		ventas = append(ventas, []interface{}{
			v.ID,
			v.CreatedAt.Format("2006-01-02 15:04"),
			v.Producto,
			v.Empleado,
			v.Cantidad,
			v.Precio.InexactFloat64(),
			v.PrecioVenta.InexactFloat64(),
			v.PrecioVenta.Mul(decimalFromInt(v.Cantidad)).InexactFloat64(),
		})
	}
	if err := nuevaHoja(f, "Ventas", ventas, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func nuevaHoja(f *excelize.File, nombre string, filas [][]interface{}, estiloCabecera int) error {
	if _, err := f.NewSheet(nombre); err != nil {
		return err
	}
	if err := escribirFilas(f, nombre, filas); err != nil {
		return err
	}
	fin, err := excelize.CoordinatesToCellName(len(filas[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(nombre, "A1", fin, estiloCabecera); err != nil {
		return err
	}
	return f.SetColWidth(nombre, "B", "D", 24)
}

func escribirFilas(f *excelize.File, hoja string, filas [][]interface{}) error {
	for i, fila := range filas {
		celda, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		fila := fila
		if err := f.SetSheetRow(hoja, celda, &fila); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+1, hoja, err)
		}
	}
	return nil
}

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
