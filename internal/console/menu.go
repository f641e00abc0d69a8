package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinica-core/internal/domain"
	historias "clinica-core/internal/modules/historias/services"
	pacientes "clinica-core/internal/modules/pacientes/services"
)

// Handler es el orquestador de consola: un bucle secuencial que invoca
// los servicios, imprime el mensaje de cualquier error y continúa. El
// proceso nunca termina por un error de operación.
type Handler struct {
	pacientes *pacientes.PacienteService
	historias historias.HistoriaClinicaService
	log       *zap.Logger

	in  *bufio.Scanner
	out io.Writer
}

func NewHandler(p *pacientes.PacienteService, h historias.HistoriaClinicaService, log *zap.Logger) *Handler {
	return &Handler{
		pacientes: p,
		historias: h,
		log:       log,
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
	}
}

// Run ejecuta el bucle de menú hasta que el usuario elige salir o la
// entrada se agota.
func (h *Handler) Run(ctx context.Context) {
	for {
		h.mostrarMenuPrincipal()

		opcion, ok := h.leerLinea()
		if !ok {
			return
		}

		op := uuid.NewString()
		h.log.Debug("operación de consola", zap.String("opcion", opcion), zap.String("correlacion", op))

		switch strings.TrimSpace(opcion) {
		case "1":
			h.crearPaciente(ctx)
		case "2":
			h.listarPacientes(ctx)
		case "3":
			h.buscarPacientePorDni(ctx)
		case "4":
			h.actualizarPaciente(ctx)
		case "5":
			h.actualizarHistoria(ctx)
		case "6":
			h.listarHistorias(ctx)
		case "7":
			h.eliminarPaciente(ctx)
		case "0":
			fmt.Fprintln(h.out, "Hasta luego.")
			return
		default:
			fmt.Fprintln(h.out, "Opción inválida.")
		}
	}
}

func (h *Handler) crearPaciente(ctx context.Context) {
	fmt.Fprintln(h.out, "== Alta Paciente ==")
	nombre := h.preguntar("Nombre: ")
	apellido := h.preguntar("Apellido: ")
	dni := h.preguntar("DNI: ")
	fNac, err := h.preguntarFecha("Fecha nacimiento (YYYY-MM-DD, opcional): ")
	if err != nil {
		fmt.Fprintln(h.out, "Error al crear paciente:", err)
		return
	}

	fmt.Fprintln(h.out, "== Historia Clínica (Obligatoria) ==")
	nro := h.preguntar("Nro historia: ")
	grupo, err := h.preguntarGrupo()
	if err != nil {
		fmt.Fprintln(h.out, "Error al crear paciente:", err)
		return
	}

	p := &domain.Paciente{
		Nombre:          nombre,
		Apellido:        apellido,
		Dni:             dni,
		FechaNacimiento: fNac,
		Historia: &domain.HistoriaClinica{
			NroHistoria:      nro,
			GrupoSanguineo:   grupo,
			Antecedentes:     h.preguntar("Antecedentes (opcional): "),
			MedicacionActual: h.preguntar("Medicación actual (opcional): "),
			Observaciones:    h.preguntar("Observaciones (opcional): "),
		},
	}

	if _, err := h.pacientes.Insertar(ctx, p); err != nil {
		fmt.Fprintln(h.out, "Error al crear paciente:", err)
		return
	}
	fmt.Fprintf(h.out, "¡Paciente creado exitosamente! (id=%d, historia=%d)\n", p.ID, p.Historia.ID)
}

func (h *Handler) listarPacientes(ctx context.Context) {
	lista, err := h.pacientes.GetAll(ctx)
	if err != nil {
		fmt.Fprintln(h.out, "Error al listar pacientes:", err)
		return
	}
	if len(lista) == 0 {
		fmt.Fprintln(h.out, "⚠ No hay pacientes registrados.")
		return
	}

	linea := "+------+------------+-----------------+-----------------+--------------+-------+"
	fmt.Fprintln(h.out, "\n=== LISTADO DE PACIENTES ===")
	fmt.Fprintln(h.out, linea)
	fmt.Fprintf(h.out, "| %-4s | %-10s | %-15s | %-15s | %-12s | %-5s |\n", "ID", "DNI", "NOMBRE", "APELLIDO", "NRO HC", "GRUPO")
	fmt.Fprintln(h.out, linea)
	for _, p := range lista {
		nroHc, grupo := "S/D", "-"
		if p.Historia != nil {
			nroHc = p.Historia.NroHistoria
			if p.Historia.GrupoSanguineo != nil {
				grupo = p.Historia.GrupoSanguineo.DB()
			}
		}
		fmt.Fprintf(h.out, "| %-4d | %-10s | %-15s | %-15s | %-12s | %-5s |\n",
			p.ID, p.Dni, p.Nombre, p.Apellido, nroHc, grupo)
	}
	fmt.Fprintln(h.out, linea)
}

func (h *Handler) buscarPacientePorDni(ctx context.Context) {
	dni := h.preguntar("Ingrese DNI a buscar: ")

	p, err := h.pacientes.FindByDni(ctx, dni)
	if err != nil {
		fmt.Fprintln(h.out, "Error al buscar paciente:", err)
		return
	}
	if p == nil {
		fmt.Fprintln(h.out, "No se encontró un paciente activo con ese DNI.")
		return
	}
	h.imprimirFicha(p)
}

func (h *Handler) actualizarPaciente(ctx context.Context) {
	id, ok := h.preguntarID("ID del paciente a actualizar: ")
	if !ok {
		return
	}

	p, err := h.pacientes.GetByID(ctx, id)
	if err != nil {
		fmt.Fprintln(h.out, "Error al actualizar paciente:", err)
		return
	}
	if p == nil {
		fmt.Fprintln(h.out, "No se encontró un paciente activo con ese ID.")
		return
	}

	if v := h.preguntar(fmt.Sprintf("Nombre [%s]: ", p.Nombre)); v != "" {
		p.Nombre = v
	}
	if v := h.preguntar(fmt.Sprintf("Apellido [%s]: ", p.Apellido)); v != "" {
		p.Apellido = v
	}
	if v := h.preguntar(fmt.Sprintf("DNI [%s]: ", p.Dni)); v != "" {
		p.Dni = v
	}

	if err := h.pacientes.Actualizar(ctx, p); err != nil {
		fmt.Fprintln(h.out, "Error al actualizar paciente:", err)
		return
	}
	fmt.Fprintln(h.out, "Paciente actualizado.")
}

func (h *Handler) actualizarHistoria(ctx context.Context) {
	id, ok := h.preguntarID("ID del paciente: ")
	if !ok {
		return
	}

	p, err := h.pacientes.GetByID(ctx, id)
	if err != nil {
		fmt.Fprintln(h.out, "Error al actualizar historia:", err)
		return
	}
	if p == nil || p.Historia == nil {
		fmt.Fprintln(h.out, "No se encontró un paciente activo con historia para ese ID.")
		return
	}

	hc := p.Historia
	if v := h.preguntar(fmt.Sprintf("Antecedentes [%s]: ", hc.Antecedentes)); v != "" {
		hc.Antecedentes = v
	}
	if v := h.preguntar(fmt.Sprintf("Medicación actual [%s]: ", hc.MedicacionActual)); v != "" {
		hc.MedicacionActual = v
	}
	if v := h.preguntar(fmt.Sprintf("Observaciones [%s]: ", hc.Observaciones)); v != "" {
		hc.Observaciones = v
	}

	if err := h.historias.Actualizar(ctx, hc); err != nil {
		fmt.Fprintln(h.out, "Error al actualizar historia:", err)
		return
	}
	fmt.Fprintln(h.out, "Historia clínica actualizada.")
}

func (h *Handler) listarHistorias(ctx context.Context) {
	lista, err := h.historias.GetAll(ctx)
	if err != nil {
		fmt.Fprintln(h.out, "Error al listar historias:", err)
		return
	}
	if len(lista) == 0 {
		fmt.Fprintln(h.out, "⚠ No hay historias clínicas registradas.")
		return
	}
	for _, hc := range lista {
		grupo := "-"
		if hc.GrupoSanguineo != nil {
			grupo = hc.GrupoSanguineo.DB()
		}
		apertura := "-"
		if hc.FechaApertura != nil {
			apertura = hc.FechaApertura.Format("2006-01-02")
		}
		fmt.Fprintf(h.out, "id=%d nro=%s grupo=%s apertura=%s\n", hc.ID, hc.NroHistoria, grupo, apertura)
	}
}

func (h *Handler) eliminarPaciente(ctx context.Context) {
	id, ok := h.preguntarID("ID del paciente a eliminar: ")
	if !ok {
		return
	}

	if err := h.pacientes.Eliminar(ctx, id); err != nil {
		fmt.Fprintln(h.out, "Error al eliminar paciente:", err)
		return
	}
	fmt.Fprintln(h.out, "Paciente y su historia clínica dados de baja.")
}

func (h *Handler) imprimirFicha(p *domain.Paciente) {
	fmt.Fprintln(h.out, "\n════════════ FICHA DEL PACIENTE ════════════")
	fmt.Fprintf(h.out, " %-20s: %s\n", "Nombre Completo", p.NombreCompleto())
	fmt.Fprintf(h.out, " %-20s: %s\n", "DNI", p.Dni)
	if p.FechaNacimiento != nil {
		fmt.Fprintf(h.out, " %-20s: %s\n", "Fecha Nacimiento", p.FechaNacimiento.Format("2006-01-02"))
	}
	if p.Historia != nil {
		fmt.Fprintf(h.out, " %-20s: %s\n", "Nro Historia", p.Historia.NroHistoria)
		if p.Historia.GrupoSanguineo != nil {
			fmt.Fprintf(h.out, " %-20s: %s\n", "Grupo Sanguíneo", p.Historia.GrupoSanguineo.DB())
		}
	}
	fmt.Fprintln(h.out, "════════════════════════════════════════════")
}

// --- lectura de entrada ---

func (h *Handler) leerLinea() (string, bool) {
	if !h.in.Scan() {
		return "", false
	}
	return h.in.Text(), true
}

func (h *Handler) preguntar(prompt string) string {
	fmt.Fprint(h.out, prompt)
	linea, _ := h.leerLinea()
	return strings.TrimSpace(linea)
}

func (h *Handler) preguntarID(prompt string) (int64, bool) {
	v := h.preguntar(prompt)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		fmt.Fprintln(h.out, "ID inválido.")
		return 0, false
	}
	return id, true
}

func (h *Handler) preguntarFecha(prompt string) (*time.Time, error) {
	v := h.preguntar(prompt)
	if v == "" {
		return nil, nil
	}
	f, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", v)
	}
	return &f, nil
}

func (h *Handler) preguntarGrupo() (*domain.GrupoSanguineo, error) {
	v := strings.ToUpper(h.preguntar("Grupo sanguíneo (A+,A-,B+,B-,AB+,AB-,O+,O- o vacío): "))
	if v == "" {
		return nil, nil
	}
	g := domain.GrupoSanguineo(v)
	if !g.EsValido() {
		return nil, fmt.Errorf("grupo sanguíneo inválido: %s", v)
	}
	return &g, nil
}
