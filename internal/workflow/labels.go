package workflow

import "sitrack/internal/model"

var statusLabels = map[model.Status]string{
	model.StatusDraft:             "Draft",
	model.StatusInProgress:        "Dalam Proses",
	model.StatusRevisionRequired:  "Revisi",
	model.StatusPendingApprovalTU: "Review Koordinator Selesai",
	model.StatusCompleted:         "Selesai",
}

// StatusLabel returns the Indonesian display text of s, or s itself when unknown.
func StatusLabel(s model.Status) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

type actionInfo struct {
	label string
	step  string
}

var actions = map[Action]actionInfo{
	ActionCreate:          {"Surat Diterima", StepReceived},
	ActionEdit:            {"Data surat diperbarui", StepReceived},
	ActionForward:         {"Laporan diteruskan ke Koordinator", StepVerification},
	ActionAssign:          {"Laporan ditugaskan", StepAssignment},
	ActionSubmit:          {"Pekerjaan staff dikirim", StepService},
	ActionRequestRevision: {"Permintaan Revisi", StepService},
	ActionForwardToTU:     {"Laporan disetujui dan diteruskan ke TU", StepService},
	ActionReturn:          {"Laporan dikembalikan ke Koordinator", StepService},
	ActionFinalize:        {"Laporan diselesaikan oleh TU", StepDone},
}

// ActionLabel is the history text written for a.
func ActionLabel(a Action) string {
	if info, ok := actions[a]; ok {
		return info.label
	}
	return string(a)
}

// StepOf maps a history action text to its public tracking step.
// Texts written by older clients that already name a step map to themselves.
func StepOf(label string) string {
	for _, info := range actions {
		if info.label == label {
			return info.step
		}
	}
	for _, s := range Steps {
		if s.Title == label {
			return s.Title
		}
	}
	return ""
}
