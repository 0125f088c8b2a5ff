// catalog.go
package catalog

// Group 一个特征分组: 组名 + 按定义顺序排列的列名
type Group struct {
	Name     string
	Features []string
}

// UnknownGroup 不属于任何分组的特征归入该组
const UnknownGroup = "Unknown"

// featureGroups CICIDS2017流量特征的静态分组表
// 组内列名与数据集列名一一对应, 数据集中不存在的列在Available中被丢弃
// 顺序即查找顺序: 同一特征出现在多个组时取先定义的组
var featureGroups = []Group{
	{"Flow Duration", []string{"Flow Duration", "Flow IAT Mean", "Flow IAT Std", "Flow IAT Max", "Flow IAT Min"}},
	{"Forward Packets", []string{"Total Fwd Packets", "Fwd Packet Length Max", "Fwd Packet Length Min",
		"Fwd Packet Length Mean", "Fwd Packet Length Std"}},
	{"Backward Packets", []string{"Total Backward Packets", "Bwd Packet Length Max", "Bwd Packet Length Min",
		"Bwd Packet Length Mean", "Bwd Packet Length Std"}},
	{"Flow Rates", []string{"Flow Bytes/s", "Flow Packets/s", "Fwd Packets/s", "Bwd Packets/s"}},
	{"Packet Timing", []string{"Fwd IAT Total", "Fwd IAT Mean", "Fwd IAT Std", "Fwd IAT Max", "Fwd IAT Min",
		"Bwd IAT Total", "Bwd IAT Mean", "Bwd IAT Std", "Bwd IAT Max", "Bwd IAT Min"}},
	{"TCP Flags", []string{"FIN Flag Count", "SYN Flag Count", "RST Flag Count", "PSH Flag Count",
		"ACK Flag Count", "URG Flag Count", "CWE Flag Count", "ECE Flag Count",
		"Fwd PSH Flags", "Bwd PSH Flags", "Fwd URG Flags", "Bwd URG Flags"}},
	{"Header Info", []string{"Fwd Header Length", "Bwd Header Length"}},
	{"Packet Size", []string{"Min Packet Length", "Max Packet Length", "Packet Length Mean",
		"Packet Length Std", "Packet Length Variance", "Average Packet Size"}},
	{"Bulk Transfer", []string{"Fwd Avg Bytes/Bulk", "Fwd Avg Packets/Bulk", "Fwd Avg Bulk Rate",
		"Bwd Avg Bytes/Bulk", "Bwd Avg Packets/Bulk", "Bwd Avg Bulk Rate"}},
	{"Subflow", []string{"Subflow Fwd Packets", "Subflow Fwd Bytes", "Subflow Bwd Packets", "Subflow Bwd Bytes"}},
	{"Window Size", []string{"Init_Win_bytes_forward", "Init_Win_bytes_backward", "act_data_pkt_fwd",
		"min_seg_size_forward"}},
	{"Active/Idle", []string{"Active Mean", "Active Std", "Active Max", "Active Min",
		"Idle Mean", "Idle Std", "Idle Max", "Idle Min"}},
	{"Ratios", []string{"Down/Up Ratio"}},
	{"Engineered - Traffic Volume", []string{"packets_total", "bytes_total", "avg_packet_size"}},
	{"Engineered - Asymmetry", []string{"packet_ratio", "byte_ratio", "is_asymmetric"}},
	{"Engineered - Connection State", []string{"connection_completed", "connection_failed"}},
	{"Engineered - Network Quality", []string{"avg_jitter", "high_jitter"}},
	{"Engineered - TCP", []string{"has_tcp_info", "window_size_avg"}},
	{"Engineered - Scanning", []string{"diverse_ports", "diverse_src_ports", "repeated_connection"}},
	{"Engineered - Response", []string{"response_body_len", "has_response"}},
}

// All 返回全部分组(按定义顺序)
func All() []Group {
	return featureGroups
}

// NumGroups 分组数量
func NumGroups() int {
	return len(featureGroups)
}

// Available 返回分组表与数据集列名的交集, 保持分组表的遍历顺序
func Available(columns []string) []string {
	colSet := make(map[string]bool, len(columns))
	for _, c := range columns {
		colSet[c] = true
	}

	var features []string
	for _, g := range featureGroups {
		for _, f := range g.Features {
			if colSet[f] {
				features = append(features, f)
			}
		}
	}
	return features
}

// GroupOf 按定义顺序查找特征所属的第一个分组, 找不到返回Unknown
func GroupOf(feature string) string {
	for _, g := range featureGroups {
		for _, f := range g.Features {
			if f == feature {
				return g.Name
			}
		}
	}
	return UnknownGroup
}
